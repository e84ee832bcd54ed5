// Package catalog serves the public medicine catalog through a shared
// read-through cache.
package catalog

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/medistore/storefront/internal/domain/catalog"
	"github.com/medistore/storefront/internal/domain/shared"
	"github.com/medistore/storefront/internal/infrastructure/cache"
	"github.com/medistore/storefront/internal/infrastructure/telemetry"
)

const (
	keyListPrefix  = "medicines?"
	keyMedicine    = "medicine:"
	keyCategories  = "categories"
	defaultTTL     = 60 * time.Second
	maxSearchRunes = 100
)

// Source is the remote catalog
type Source interface {
	ListMedicines(ctx context.Context, q catalog.ListQuery) (*catalog.Page, error)
	GetMedicine(ctx context.Context, id string) (*catalog.Medicine, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
}

// Service reads the catalog, caching answers for a short TTL
type Service struct {
	source  Source
	store   cache.Store
	ttl     time.Duration
	logger  *zap.Logger
	metrics *telemetry.Metrics
}

// Option configures a Service
type Option func(*Service)

// WithCache enables caching in store for ttl
func WithCache(store cache.Store, ttl time.Duration) Option {
	return func(s *Service) {
		s.store = store
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records cache hits and misses
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService creates a catalog service. Without WithCache every read goes to source.
func NewService(source Source, opts ...Option) *Service {
	s := &Service{
		source: source,
		ttl:    defaultTTL,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListMedicines returns one page of the catalog
func (s *Service) ListMedicines(ctx context.Context, q catalog.ListQuery) (*catalog.Page, error) {
	q = sanitize(q)
	var page catalog.Page
	err := s.readThrough(ctx, q.CacheKey(), &page, func() (any, error) {
		return s.source.ListMedicines(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// GetMedicine returns one medicine
func (s *Service) GetMedicine(ctx context.Context, id string) (*catalog.Medicine, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Medicine id is required")
	}
	var m catalog.Medicine
	err := s.readThrough(ctx, keyMedicine+id, &m, func() (any, error) {
		return s.source.GetMedicine(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListCategories returns every category
func (s *Service) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var out []catalog.Category
	err := s.readThrough(ctx, keyCategories, &out, func() (any, error) {
		return s.source.ListCategories(ctx)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Invalidate drops cached medicine pages and details
func (s *Service) Invalidate(ctx context.Context) {
	s.drop(ctx, keyListPrefix)
	s.drop(ctx, keyMedicine)
}

// InvalidateCategories drops the cached category list
func (s *Service) InvalidateCategories(ctx context.Context) {
	s.drop(ctx, keyCategories)
}

func (s *Service) drop(ctx context.Context, prefix string) {
	if s.store == nil {
		return
	}
	if err := s.store.DeletePrefix(ctx, prefix); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.String("prefix", prefix), zap.Error(err))
	}
}

// readThrough fills out from the cache or from load. Cache errors never fail
// the read.
func (s *Service) readThrough(ctx context.Context, key string, out any, load func() (any, error)) error {
	if s.store != nil {
		raw, ok, err := s.store.Get(ctx, key)
		if err != nil {
			s.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		if ok {
			if err := json.Unmarshal(raw, out); err == nil {
				s.metrics.CacheLookup(true)
				return nil
			}
			s.logger.Warn("discarding unreadable cache entry", zap.String("key", key))
		}
		s.metrics.CacheLookup(false)
	}

	v, err := load()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return err
	}

	if s.store != nil {
		if err := s.store.Set(ctx, key, raw, s.ttl); err != nil {
			s.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

// sanitize bounds the listing query to values the remote API accepts
func sanitize(q catalog.ListQuery) catalog.ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	switch {
	case q.Limit < 1:
		q.Limit = 12
	case q.Limit > 100:
		q.Limit = 100
	}
	q.Search = strings.TrimSpace(q.Search)
	if r := []rune(q.Search); len(r) > maxSearchRunes {
		q.Search = string(r[:maxSearchRunes])
	}
	return q
}
