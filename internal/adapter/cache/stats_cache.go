package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"taskboard/internal/core/ports"
	"taskboard/internal/core/taskset"
)

// StatsCache keeps computed per-user statistics in Redis for a short TTL.
// All failures degrade to a cache miss: a broken Redis must never take the
// stats endpoint down with it.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.StatsCache = (*StatsCache)(nil)

func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &StatsCache{client: client, ttl: ttl}
}

func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func statsKey(userID, contextTag string) string {
	return fmt.Sprintf("taskboard:stats:%s:%s", userID, contextTag)
}

func (c *StatsCache) Get(ctx context.Context, userID, contextTag string) (taskset.Stats, bool) {
	payload, err := c.client.Get(ctx, statsKey(userID, contextTag)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Warn("stats cache read failed", zap.Error(err))
		}
		return taskset.Stats{}, false
	}

	var stats taskset.Stats
	if err := json.Unmarshal(payload, &stats); err != nil {
		zap.L().Warn("stats cache entry corrupt", zap.String("user_id", userID), zap.Error(err))
		return taskset.Stats{}, false
	}
	return stats, true
}

func (c *StatsCache) Set(ctx context.Context, userID, contextTag string, stats taskset.Stats) {
	payload, err := json.Marshal(stats)
	if err != nil {
		zap.L().Warn("stats cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, statsKey(userID, contextTag), payload, c.ttl).Err(); err != nil {
		zap.L().Warn("stats cache write failed", zap.Error(err))
	}
}

// Invalidate drops every cached stats entry for the user, whatever the
// context tag.
func (c *StatsCache) Invalidate(ctx context.Context, userID string) {
	pattern := statsKey(userID, "*")
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			zap.L().Warn("stats cache invalidation failed", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		zap.L().Warn("stats cache scan failed", zap.Error(err))
	}
}
