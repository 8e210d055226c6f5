package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vendorbuddy/marketplace-service/internal/domain"
)

const productKeyPrefix = "product:"

// ProductCache is a best-effort read-through cache for products. Redis
// failures degrade to misses; they never fail the request.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewProductCache builds the cache wrapper.
func NewProductCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ProductCache {
	return &ProductCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached product, if present.
func (c *ProductCache) Get(ctx context.Context, id string) (*domain.Product, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, productKeyPrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("product cache get failed", zap.String("product_id", id), zap.Error(err))
		}
		return nil, false
	}
	var product domain.Product
	if err := json.Unmarshal(payload, &product); err != nil {
		c.logger.Debug("product cache entry corrupt", zap.String("product_id", id), zap.Error(err))
		return nil, false
	}
	return &product, true
}

// Set stores the product under its id.
func (c *ProductCache) Set(ctx context.Context, product *domain.Product) {
	if c == nil || c.client == nil || product == nil {
		return
	}
	payload, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, productKeyPrefix+product.ID, payload, c.ttl).Err(); err != nil {
		c.logger.Debug("product cache set failed", zap.String("product_id", product.ID), zap.Error(err))
	}
}

// Invalidate drops the cached entry after a write.
func (c *ProductCache) Invalidate(ctx context.Context, id string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, productKeyPrefix+id).Err(); err != nil {
		c.logger.Debug("product cache invalidate failed", zap.String("product_id", id), zap.Error(err))
	}
}
