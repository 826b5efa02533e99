package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Arif911659/DhakaCart-03/internal/redisx"
)

type Store interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int64) (Product, error)
	ListByCategory(ctx context.Context, category string) ([]Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	FlushAll(ctx context.Context) error
}

// Service is the read path: the full listing and single-product lookups go
// through the cache, category queries hit the store directly. The asymmetry
// is deliberate; the full listing is the hot query, filtered queries are not.
type Service struct {
	Store Store
	Cache Cache
}

func (s *Service) ListProducts(ctx context.Context) ([]Product, Source, error) {
	if raw, hit := s.cacheGet(ctx, redisx.KeyProductsAll); hit {
		var ps []Product
		if err := json.Unmarshal([]byte(raw), &ps); err == nil {
			return ps, SourceCache, nil
		}
		log.Warn().Str("key", redisx.KeyProductsAll).Msg("corrupt cache entry, querying store")
	}

	ps, err := s.Store.ListProducts(ctx)
	if err != nil {
		return nil, "", err
	}
	s.cacheSet(ctx, redisx.KeyProductsAll, ps)
	return ps, SourceStore, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (Product, Source, error) {
	key := redisx.KeyProduct(id)
	if raw, hit := s.cacheGet(ctx, key); hit {
		var p Product
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			return p, SourceCache, nil
		}
		log.Warn().Str("key", key).Msg("corrupt cache entry, querying store")
	}

	p, err := s.Store.GetProduct(ctx, id)
	if err != nil {
		// Negative results are not cached; a product created later must be
		// visible immediately.
		return Product{}, "", err
	}
	s.cacheSet(ctx, key, p)
	return p, SourceStore, nil
}

func (s *Service) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	return s.Store.ListByCategory(ctx, category)
}

func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	return s.Store.ListCategories(ctx)
}

// ClearCache empties the whole cache. Operational recovery path.
func (s *Service) ClearCache(ctx context.Context) error {
	return s.Cache.FlushAll(ctx)
}

// cacheGet treats every cache failure as a miss so a cache outage never
// fails a read.
func (s *Service) cacheGet(ctx context.Context, key string) (string, bool) {
	raw, err := s.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redisx.ErrMiss) {
			log.Warn().Err(err).Str("key", key).Msg("cache read failed, querying store")
		}
		return "", false
	}
	return raw, true
}

func (s *Service) cacheSet(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, string(b), redisx.TTLCatalog); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache populate failed")
	}
}
