package postgres

// SQL queries for the series table.

const seriesColumns = `
			id, name, kind, data_type, unit, granularity, calendar,
			start_date, sample_count, samples, timestamps, created_at`

const (
	// querySaveSeries inserts a series definition.
	// ON CONFLICT DO NOTHING returns no rows (sql.ErrNoRows) when the name is taken.
	querySaveSeries = `
		INSERT INTO series (` + seriesColumns + `
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (name) DO NOTHING
		RETURNING id
	`

	queryGetSeries = `
		SELECT` + seriesColumns + `
		FROM series
		WHERE name = $1
	`

	queryListSeries = `
		SELECT` + seriesColumns + `
		FROM series
		ORDER BY name ASC
	`

	queryDeleteSeries = `DELETE FROM series WHERE name = $1`
)
