package utils

import (
	"context"
	"log"
	"time"

	"winetrail/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient backs the winery catalog read-through cache.
	CacheClient *redis.Client
	// CartClient stores itinerary carts.
	CartClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// InitCache initializes the catalog cache client.
func InitCache() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "Cache")
}

// GetCacheClient returns the catalog cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitCartCache initializes the Redis client holding cart sessions.
func InitCartCache() {
	CartClient = newRedisClient(config.AppConfig.RedisCartDB, "Cart")
}

// GetCartClient returns the cart session client.
func GetCartClient() *redis.Client {
	if CartClient == nil {
		InitCartCache()
	}
	return CartClient
}
