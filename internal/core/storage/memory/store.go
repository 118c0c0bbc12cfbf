// Package memory provides an in-process SeriesStore, used for development,
// tests and deployments that rebuild their catalog from seed files.
package memory

import (
	"context"
	"sort"
	"sync"

	v1 "github.com/aevon-lab/calseries/internal/api/v1"
	"github.com/aevon-lab/calseries/internal/core/storage"
)

// Store is a thread-safe in-memory SeriesStore. It hands out copies so
// callers can never alias stored samples.
type Store struct {
	mu     sync.RWMutex
	series map[string]*v1.Series
}

var _ storage.SeriesStore = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{series: make(map[string]*v1.Series)}
}

func (s *Store) SaveSeries(_ context.Context, series *v1.Series) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.series[series.Name]; exists {
		return storage.ErrDuplicate
	}
	s.series[series.Name] = clone(series)
	return nil
}

func (s *Store) GetSeries(_ context.Context, name string) (*v1.Series, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	series, ok := s.series[name]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return clone(series), nil
}

func (s *Store) ListSeries(_ context.Context) ([]*v1.Series, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*v1.Series, 0, len(s.series))
	for _, series := range s.series {
		out = append(out, clone(series))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) DeleteSeries(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.series[name]; !ok {
		return storage.ErrNotFound
	}
	delete(s.series, name)
	return nil
}

func clone(series *v1.Series) *v1.Series {
	c := *series
	c.Values = append([]float64(nil), series.Values...)
	if series.Timestamps != nil {
		c.Timestamps = append(c.Timestamps[:0:0], series.Timestamps...)
	}
	return &c
}
