// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"themeweek/config"

	"github.com/go-redis/redis/v8"
)

var (
	// DecisionClient backs the device-scoped decision store.
	DecisionClient *redis.Client
	// SessionCacheClient is the dedicated client for session verification caching.
	SessionCacheClient *redis.Client
)

// InitDecisionStore initializes the Redis client backing the decision store
// (using the DB number from AppConfig).
func InitDecisionStore() {
	DecisionClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDecisionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := DecisionClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Decision Store): %v", err)
	}
}

// GetDecisionClient returns the decision-store client.
func GetDecisionClient() *redis.Client {
	if DecisionClient == nil {
		InitDecisionStore()
	}
	return DecisionClient
}

// InitSessionCache initializes the Redis client for session verification
// caching (using the DB number from AppConfig).
func InitSessionCache() {
	SessionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := SessionCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Session Cache): %v", err)
	}
}

// GetSessionCacheClient returns the Redis client for session caching.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}
