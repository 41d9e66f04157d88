package libs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/DivyaPradhan23/grocery-backend/models"
)

const productListKey = "products_list"

// ProductCache keeps the public product list in Redis. A nil cache or a
// cache without a client is a no-op, so callers never branch on Redis
// availability.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{client: client, ttl: ttl}
}

func (c *ProductCache) GetProducts(ctx context.Context) ([]models.Product, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	cached, err := c.client.Get(ctx, productListKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.WithError(err).Warn("product cache read failed")
		}
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(cached), &products); err != nil {
		log.WithError(err).Warn("product cache entry is corrupt")
		return nil, false
	}
	return products, true
}

func (c *ProductCache) SetProducts(ctx context.Context, products []models.Product) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(products)
	if err != nil {
		log.WithError(err).Warn("product cache encode failed")
		return
	}
	if err := c.client.Set(ctx, productListKey, data, c.ttl).Err(); err != nil {
		log.WithError(err).Warn("product cache write failed")
	}
}

func (c *ProductCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, productListKey).Err(); err != nil {
		log.WithError(err).Warn("product cache invalidation failed")
	}
}
