package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the latest probe of the engine's backing services:
// Mongo holds appointments, providers and slot locks, Cache serves the
// availability cache, Queue backs the outbound event worker.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Cache     bool      `json:"cache"`
	Queue     bool      `json:"queue"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

const healthProbeInterval = 60 * time.Second

// StartHealthMonitor probes the backing services periodically and keeps
// the snapshot in memory for the health endpoint. Probes carry their own
// short timeout so one hung service cannot stall the loop.
func StartHealthMonitor(mongoClient *mongo.Client, cache, queue *redis.Client) {
	go func() {
		ticker := time.NewTicker(healthProbeInterval)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

			status := HealthStatus{
				Mongo:     mongoClient.Ping(ctx, nil) == nil,
				Cache:     cache.Ping(ctx).Err() == nil,
				Queue:     queue.Ping(ctx).Err() == nil,
				CheckedAt: time.Now(),
			}
			cancel()

			healthMu.Lock()
			currentHealth = status
			healthMu.Unlock()
		}
	}()
}
