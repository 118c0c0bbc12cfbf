package storage

import (
	"context"
	"errors"

	v1 "github.com/aevon-lab/calseries/internal/api/v1"
)

// ErrDuplicate is returned when a series with the same name already exists.
var ErrDuplicate = errors.New("series already exists")

// ErrNotFound is returned when no series has the requested name.
var ErrNotFound = errors.New("series not found")

// SeriesStore defines the interface for storing and retrieving series
// definitions. Stored definitions are immutable: replacing a series means
// deleting it and saving a new one.
type SeriesStore interface {
	// SaveSeries persists a new series. Returns ErrDuplicate if the name is taken.
	SaveSeries(ctx context.Context, series *v1.Series) error

	// GetSeries returns the series with the given name, or ErrNotFound.
	GetSeries(ctx context.Context, name string) (*v1.Series, error)

	// ListSeries returns every stored series ordered by name.
	ListSeries(ctx context.Context) ([]*v1.Series, error)

	// DeleteSeries removes the series with the given name, or returns ErrNotFound.
	DeleteSeries(ctx context.Context, name string) error
}
