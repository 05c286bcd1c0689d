// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jason-s-yu/pushups/internal/models"
	"github.com/redis/go-redis/v9"
)

// DefaultQueueName is the Redis list (queue) name for rank change events.
const DefaultQueueName = "pushup_rank_events"

// revokedPrefix namespaces revoked token ids.
const revokedPrefix = "pushups:revoked:"

// ConnectRedis creates a client for addr/db and pings it.
func ConnectRedis(ctx context.Context, addr string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// TokenStore tracks revoked session token ids.
type TokenStore struct {
	rdb redis.Cmdable
}

func NewTokenStore(rdb redis.Cmdable) *TokenStore {
	return &TokenStore{rdb: rdb}
}

// Revoke marks tokenID revoked for ttl. A ttl of 0 keeps the mark forever,
// which matches tokens issued without an expiry.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl < 0 {
		// already expired, nothing to revoke
		return nil
	}
	if err := s.rdb.Set(ctx, revokedPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token %s: %w", tokenID, err)
	}
	return nil
}

// IsRevoked reports whether tokenID was revoked.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token %s: %w", tokenID, err)
	}
	return n > 0, nil
}

// EventQueue is a Redis list of JSON-encoded rank events.
type EventQueue struct {
	rdb  redis.Cmdable
	name string
}

func NewEventQueue(rdb redis.Cmdable, name string) *EventQueue {
	if name == "" {
		name = DefaultQueueName
	}
	return &EventQueue{rdb: rdb, name: name}
}

// Name is the Redis key of the list.
func (q *EventQueue) Name() string {
	return q.name
}

// PublishRankEvent serializes ev to JSON, then pushes it to the Redis queue.
func (q *EventQueue) PublishRankEvent(ctx context.Context, ev models.RankEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal RankEvent: %w", err)
	}
	if err := q.rdb.RPush(ctx, q.name, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", q.name, err)
	}
	return nil
}

// Pop blocks for up to timeout waiting for the next event.
// It returns ok=false when the wait timed out.
func (q *EventQueue) Pop(ctx context.Context, timeout time.Duration) (ev models.RankEvent, ok bool, err error) {
	res, err := q.rdb.BLPop(ctx, timeout, q.name).Result()
	if errors.Is(err, redis.Nil) {
		return models.RankEvent{}, false, nil
	}
	if err != nil {
		return models.RankEvent{}, false, fmt.Errorf("BLPop %s: %w", q.name, err)
	}
	if len(res) != 2 {
		return models.RankEvent{}, false, fmt.Errorf("BLPop %s: unexpected reply of length %d", q.name, len(res))
	}
	if err := json.Unmarshal([]byte(res[1]), &ev); err != nil {
		return models.RankEvent{}, false, fmt.Errorf("failed to parse rank event: %w", err)
	}
	return ev, true, nil
}
