// Package interpcache caches AI query interpretations in a key-value store.
// Interpretations depend only on the query text, so identical queries can
// skip the provider round trip. Ranking depends on the caller's catalog and
// is never cached.
package interpcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/travelcommerce/smartsearch/internal/db"
	"github.com/travelcommerce/smartsearch/internal/domain"
)

const cacheKeyPrefix = "smartsearch:interp_cache:"

// store is the consumer interface for the interpretation cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// gateway is the consumer interface for the decorated AI provider.
type gateway interface {
	Interpret(ctx context.Context, query string) (*domain.ProviderInterpretation, error)
	Rank(ctx context.Context, query string, interp domain.Interpretation, posts []domain.CompactPost) ([]string, error)
}

// CachedGateway caches Interpret results and passes Rank through unchanged.
type CachedGateway struct {
	inner      gateway
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner gateway,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedGateway{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Interpret returns a cached interpretation or calls the inner gateway.
// Cache failures fall through to the provider, never to the caller.
func (c *CachedGateway) Interpret(ctx context.Context, query string) (*domain.ProviderInterpretation, error) {
	key := c.cacheKey(query)

	if interp, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return interp, nil
	}

	c.incCache("miss")

	interp, err := c.inner.Interpret(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("interpret query: %w", err)
	}

	c.putToCache(ctx, key, interp)
	return interp, nil
}

// Rank delegates to the inner gateway. Results depend on the candidate
// catalog, which varies per call.
func (c *CachedGateway) Rank(
	ctx context.Context, query string,
	interp domain.Interpretation, posts []domain.CompactPost,
) ([]string, error) {
	return c.inner.Rank(ctx, query, interp, posts)
}

func (c *CachedGateway) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedGateway) cacheKey(query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	h := sha256.Sum256([]byte(normalized))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedGateway) getFromCache(ctx context.Context, key string) (*domain.ProviderInterpretation, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached interpretation", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var interp domain.ProviderInterpretation
	if err := json.Unmarshal(data, &interp); err != nil {
		c.logger.Warn("Failed to parse cached interpretation", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	return &interp, true
}

func (c *CachedGateway) putToCache(ctx context.Context, key string, interp *domain.ProviderInterpretation) {
	data, err := json.Marshal(interp)
	if err != nil {
		c.logger.Warn("Failed to encode interpretation for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache interpretation", zap.String("key", key), zap.Error(err))
	}
}
