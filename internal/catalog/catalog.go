// Package catalog resolves series names to built, immutable series. Built
// series are kept in an LRU so hot series are indexed once; concurrent
// misses for the same name share a single store read and build.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	v1 "github.com/aevon-lab/calseries/internal/api/v1"
	tserr "github.com/aevon-lab/calseries/internal/core/errors"
	"github.com/aevon-lab/calseries/internal/core/storage"
)

// DefaultCacheCapacity is the default number of built series to keep.
const DefaultCacheCapacity = 256

// Catalog builds series from a SeriesStore and caches them.
type Catalog struct {
	store           storage.SeriesStore
	cache           *lruCache
	group           singleflight.Group
	defaultCalendar string
}

// New creates a catalog over store. Series created without a calendar get
// defaultCalendar.
func New(store storage.SeriesStore, cacheCapacity int, defaultCalendar string) *Catalog {
	if cacheCapacity <= 0 {
		cacheCapacity = DefaultCacheCapacity
	}
	return &Catalog{
		store:           store,
		cache:           newLRUCache(cacheCapacity),
		defaultCalendar: defaultCalendar,
	}
}

// Get returns the built series named name, or storage.ErrNotFound.
func (c *Catalog) Get(ctx context.Context, name string) (Series, error) {
	if s, ok := c.cache.get(name); ok {
		return s, nil
	}

	v, err, shared := c.group.Do(name, func() (interface{}, error) {
		def, err := c.store.GetSeries(ctx, name)
		if err != nil {
			return nil, err
		}
		s, err := Build(def)
		if err != nil {
			return nil, fmt.Errorf("stored series %q is invalid: %w", name, err)
		}
		c.cache.put(name, s)
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("[Catalog] Shared concurrent build", "series", name)
	}
	return v.(Series), nil
}

// Definition returns the stored definition of name.
func (c *Catalog) Definition(ctx context.Context, name string) (*v1.Series, error) {
	return c.store.GetSeries(ctx, name)
}

// Create validates def, builds it and persists it. ID and CreatedAt are
// assigned when unset, the kind follows from the timestamps when absent,
// and every date is normalized to its wall clock.
// Returns storage.ErrDuplicate if the name is taken, or a malformed-input
// error if the definition cannot form a series.
func (c *Catalog) Create(ctx context.Context, def *v1.Series) (Series, error) {
	if def.Calendar == "" {
		def.Calendar = c.defaultCalendar
	}
	if def.DataType == "" {
		def.DataType = "float"
	}
	if def.Kind == "" {
		def.Kind = v1.KindPeriodic
		if len(def.Timestamps) > 0 {
			def.Kind = v1.KindNonPeriodic
		}
	}
	normalizeDates(def)

	s, err := Build(def)
	if err != nil {
		return nil, err
	}

	if def.ID == "" {
		def.ID = uuid.New().String()
	}
	if def.CreatedAt.IsZero() {
		def.CreatedAt = time.Now().UTC()
	}

	if err := c.store.SaveSeries(ctx, def); err != nil {
		return nil, err
	}
	c.cache.put(def.Name, s)

	slog.Info("[Catalog] Series created",
		"series", def.Name,
		"kind", def.Kind,
		"granularity", def.Granularity,
		"samples", len(def.Values))
	return s, nil
}

// Delete removes name from the store and the cache.
func (c *Catalog) Delete(ctx context.Context, name string) error {
	if err := c.store.DeleteSeries(ctx, name); err != nil {
		return err
	}
	c.cache.invalidate(name)
	c.group.Forget(name)
	slog.Info("[Catalog] Series deleted", "series", name)
	return nil
}

// List returns the listing view of every stored series, ordered by name.
func (c *Catalog) List(ctx context.Context) ([]v1.SeriesInfo, error) {
	defs, err := c.store.ListSeries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]v1.SeriesInfo, 0, len(defs))
	for _, def := range defs {
		out = append(out, def.Info())
	}
	return out, nil
}

// Seed creates every definition whose name is not stored yet and returns how
// many were created. Existing series are left untouched and malformed
// definitions are logged and skipped; only storage failures are returned.
func (c *Catalog) Seed(ctx context.Context, defs []*v1.Series) (int, error) {
	created, skipped := 0, 0
	for _, def := range defs {
		if _, err := c.Create(ctx, def); err != nil {
			switch {
			case errors.Is(err, storage.ErrDuplicate):
				slog.Debug("[Catalog] Seed already present", "series", def.Name)
				continue
			case errors.Is(err, tserr.ErrMalformedInput):
				slog.Warn("[Catalog] Skipping invalid seed", "series", def.Name, "error", err)
				skipped++
				continue
			}
			return created, fmt.Errorf("seed %q: %w", def.Name, err)
		}
		created++
	}
	slog.Info("[Catalog] Seeds loaded", "created", created, "skipped", skipped, "total", len(defs))
	return created, nil
}
