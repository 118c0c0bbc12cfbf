package catalog

import (
	"context"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/calseries/internal/api/v1"
)

// SeedSource returns the current set of seed definitions.
type SeedSource func() ([]*v1.Series, error)

// Reloader periodically seeds the catalog from a SeedSource, so series added
// to the seed directory while the server runs become queryable. Series that
// already exist are left untouched.
type Reloader struct {
	interval time.Duration
	catalog  *Catalog
	source   SeedSource
}

// NewReloader creates a reloader that runs every interval.
func NewReloader(interval time.Duration, cat *Catalog, source SeedSource) *Reloader {
	return &Reloader{
		interval: interval,
		catalog:  cat,
		source:   source,
	}
}

// Start reloads seeds on every tick until ctx is cancelled.
func (r *Reloader) Start(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("[Reloader] Starting seed reloader", "interval", r.interval)

	for {
		select {
		case <-ticker.C:
			r.reload(ctx)
		case <-ctx.Done():
			slog.Info("[Reloader] Stopping (context cancelled)")
			return nil
		}
	}
}

// reload runs one pass. Failures are logged and retried on the next tick.
func (r *Reloader) reload(ctx context.Context) int {
	defs, err := r.source()
	if err != nil {
		slog.Error("[Reloader] Failed to read seeds", "error", err)
		return 0
	}

	created, err := r.catalog.Seed(ctx, defs)
	if err != nil {
		slog.Error("[Reloader] Seeding failed", "error", err, "created", created)
	}
	return created
}
