package utils

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Redis     []bool    `json:"redis"`
	AuthAPI   bool      `json:"authApi"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
func StartHealthMonitor(redisClients []*redis.Client, authHealthURL string) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()
		httpClient := &http.Client{Timeout: 5 * time.Second}

		for range ticker.C {
			var redisHealth []bool

			for _, client := range redisClients {
				err := client.Ping(ctx).Err()
				redisHealth = append(redisHealth, err == nil)
			}

			authHealthy := false
			if authHealthURL != "" {
				if resp, err := httpClient.Get(authHealthURL); err == nil {
					authHealthy = resp.StatusCode < 500
					resp.Body.Close()
				}
			}

			mu.Lock()
			currentHealth = HealthStatus{
				Redis:     redisHealth,
				AuthAPI:   authHealthy,
				CheckedAt: time.Now(),
			}
			mu.Unlock()
		}
	}()
}
