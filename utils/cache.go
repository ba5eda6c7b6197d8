package utils

import (
	"context"
	"log"
	"time"

	"zapagenda/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (usage quotas, counters).
	CacheClient *redis.Client
	// StateCacheClient holds per-phone conversation state.
	StateCacheClient *redis.Client
	// HistoryCacheClient holds per-phone chat history.
	HistoryCacheClient *redis.Client
)

func newRedisClient(db int, label string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", label, err)
	}
	return client
}

// InitRedis initializes all Redis clients.
func InitRedis() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "cache")
	StateCacheClient = newRedisClient(config.AppConfig.RedisStateDB, "conversation state")
	HistoryCacheClient = newRedisClient(config.AppConfig.RedisHistoryDB, "chat history")
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "cache")
	}
	return CacheClient
}

// GetStateCacheClient returns the conversation-state client.
func GetStateCacheClient() *redis.Client {
	if StateCacheClient == nil {
		StateCacheClient = newRedisClient(config.AppConfig.RedisStateDB, "conversation state")
	}
	return StateCacheClient
}

// GetHistoryCacheClient returns the chat-history client.
func GetHistoryCacheClient() *redis.Client {
	if HistoryCacheClient == nil {
		HistoryCacheClient = newRedisClient(config.AppConfig.RedisHistoryDB, "chat history")
	}
	return HistoryCacheClient
}
