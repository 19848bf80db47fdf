package feedcache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache holds rendered site-wide listing pages for a bounded time. Entries
// expire ttl after Put; Clear drops everything at once. The site-wide
// listing is viewer-independent, so keys carry only the query signature.
// A nil redis client disables caching: every Get misses and Put is a no-op.
type Cache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func New(rdb *redis.Client, prefix string, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, prefix: prefix, ttl: ttl}
}

// PageKey builds the cache key signature for one page of a listing.
func PageKey(number, size int) string {
	return fmt.Sprintf("page=%d&size=%d", number, size)
}

// Get returns the cached value for key. Redis errors degrade to a miss;
// a miss is normal control flow, never an error.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c.rdb == nil {
		return nil, false
	}
	val, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("feed cache get error: %v", err)
		}
		return nil, false
	}
	return val, true
}

// Put stores value under key until the ttl elapses.
func (c *Cache) Put(ctx context.Context, key string, value []byte) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, c.prefix+key, value, c.ttl).Err(); err != nil {
		log.Printf("feed cache put error: %v", err)
	}
}

// Clear drops every entry of this cache regardless of remaining ttl.
func (c *Cache) Clear(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}

	iter := c.rdb.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}
