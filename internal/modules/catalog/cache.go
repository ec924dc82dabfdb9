package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const listingKey = "catalog:products:available"

// ListingCache keeps the public product listing in redis for a short TTL.
// It is purely a read accelerator: a miss or a redis failure falls through to
// postgres, and admin writes invalidate the key. Stock values inside the
// cached listing may lag by up to the TTL; every stock decision is made
// against the database, never against this cache.
type ListingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewListingCache(rdb *redis.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{rdb: rdb, ttl: ttl}
}

func (c *ListingCache) Get(ctx context.Context) ([]*Product, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, listingKey).Bytes()
	if err != nil {
		return nil, false
	}
	var products []*Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false
	}
	return products, true
}

func (c *ListingCache) Set(ctx context.Context, products []*Product) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, listingKey, raw, c.ttl).Err()
}

func (c *ListingCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, listingKey).Err()
}
