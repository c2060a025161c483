package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
)

const DefaultCacheKey = "storefront:products"

// CachedSource keeps the last successful catalog in redis. Redis failures are
// logged and fall through to the wrapped source; fetch errors are never cached.
type CachedSource struct {
	next   port.ProductSource
	rdb    redis.Cmdable
	key    string
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedSource(next port.ProductSource, rdb redis.Cmdable, ttl time.Duration, logger *zap.Logger) *CachedSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSource{
		next:   next,
		rdb:    rdb,
		key:    DefaultCacheKey,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *CachedSource) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	if products, ok := s.cached(ctx); ok {
		return products, nil
	}

	products, err := s.next.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(products)
	if err != nil {
		s.logger.Warn("encode products for cache", zap.Error(err))
		return products, nil
	}

	if err := s.rdb.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("cache products", zap.String("key", s.key), zap.Error(err))
	}

	return products, nil
}

func (s *CachedSource) Invalidate(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("rdb.Del: %w", err)
	}
	return nil
}

func (s *CachedSource) cached(ctx context.Context) ([]domain.Product, bool) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		s.logger.Warn("read cached products", zap.String("key", s.key), zap.Error(err))
		return nil, false
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		s.logger.Warn("decode cached products", zap.String("key", s.key), zap.Error(err))
		return nil, false
	}

	return products, true
}
