package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const replayKeyPrefix = "webhook:seen:"

// ReplayGuard remembers delivered webhook message ids for a bounded window.
type ReplayGuard interface {
	// Claim records id and reports whether this is its first delivery.
	Claim(ctx context.Context, id string) (bool, error)
	// Release forgets id so a failed delivery can be retried.
	Release(ctx context.Context, id string) error
}

type redisReplayGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReplayGuard returns a guard backed by client. A nil client yields a guard
// that accepts every delivery.
func NewReplayGuard(client *redis.Client, ttl time.Duration) ReplayGuard {
	return &redisReplayGuard{client: client, ttl: ttl}
}

func (g *redisReplayGuard) Claim(ctx context.Context, id string) (bool, error) {
	if g == nil || g.client == nil {
		return true, nil
	}
	fresh, err := g.client.SetNX(ctx, replayKeyPrefix+id, time.Now().Unix(), g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim webhook id: %w", err)
	}
	return fresh, nil
}

func (g *redisReplayGuard) Release(ctx context.Context, id string) error {
	if g == nil || g.client == nil {
		return nil
	}
	if err := g.client.Del(ctx, replayKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("release webhook id: %w", err)
	}
	return nil
}
