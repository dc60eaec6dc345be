package image

import (
	"context"
	"sync"

	"limban-server-go/internal/domain/image/cache"
	"limban-server-go/internal/platform/logging"
)

// Metrics counts render-time lookups. Counters only grow; Snapshot returns
// a consistent copy.
type Metrics struct {
	mutex     sync.Mutex
	processed int64
	cacheHits int64
	errors    int64
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Processed int64 `json:"processed"`
	CacheHits int64 `json:"cacheHits"`
	Errors    int64 `json:"errors"`
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return MetricsSnapshot{Processed: m.processed, CacheHits: m.cacheHits, Errors: m.errors}
}

// Service answers render-time variant lookups against the mapping, memoized
// through an injected cache store. The cache is passed in, never created
// here, so callers control its lifetime and sharing.
type Service struct {
	mapping Mapping
	store   cache.Store
	ext     string
	metrics Metrics
	logger  *logging.Logger
}

func NewService(mapping Mapping, store cache.Store, ext string, logger *logging.Logger) *Service {
	if ext == "" {
		ext = "webp"
	}
	return &Service{mapping: mapping, store: store, ext: ext, logger: logger}
}

// Resolve returns the public path for one variant of a source URL, falling
// back to the source itself when the pair was never processed. Cache errors
// are counted and the lookup proceeds uncached.
func (s *Service) Resolve(ctx context.Context, url string, spec VariantSpec) string {
	s.metrics.mutex.Lock()
	s.metrics.processed++
	s.metrics.mutex.Unlock()

	key := cache.Key(url, spec.Name, spec.Quality, s.ext)
	if s.store != nil {
		if val, ok, err := s.store.Get(ctx, key); err == nil && ok {
			s.metrics.mutex.Lock()
			s.metrics.cacheHits++
			s.metrics.mutex.Unlock()
			return val
		} else if err != nil {
			s.countError(err)
		}
	}

	path := s.mapping.Lookup(url, spec.Name)
	if s.store != nil {
		if err := s.store.Set(ctx, key, path); err != nil {
			s.countError(err)
		}
	}
	return path
}

// Metrics returns a snapshot of the lookup counters.
func (s *Service) Metrics() MetricsSnapshot {
	return s.metrics.Snapshot()
}

func (s *Service) countError(err error) {
	s.metrics.mutex.Lock()
	s.metrics.errors++
	s.metrics.mutex.Unlock()
	if s.logger != nil {
		s.logger.Warn("[Pipeline] cache error: %v", err)
	}
}
