package redis

import (
	"github.com/redis/go-redis/v9"
)

// Cache is a read-through cache for public product detail lookups. Every
// operation is best-effort: a Redis failure degrades to a database read, never
// to a request failure.
type Cache struct {
	client *redis.Client
}

func NewCache(addr, password string) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       0,
			Protocol: 2,
		}),
	}
}

func (c *Cache) Close() error {
	return c.client.Close()
}
