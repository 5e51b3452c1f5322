// Package events publishes job lifecycle notifications for other services.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Channel is the Redis pub/sub channel job events are published on.
const Channel = "JOB_EVENTS"

// Event types.
const (
	TypeJobCreated = "job.created"
	TypeJobDeleted = "job.deleted"
)

// Event is the JSON payload published on Channel.
type Event struct {
	Type      string    `json:"type"`
	JobID     string    `json:"jobId"`
	CompanyID string    `json:"companyId"`
	At        time.Time `json:"at"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Noop discards every event.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }

// Redis publishes events with PUBLISH.
type Redis struct {
	rdb *redis.Client
}

// NewRedis creates and verifies a Redis client connection.
func NewRedis(ctx context.Context, redisURL string) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Redis{rdb: rdb}, nil
}

func (r *Redis) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", e.Type, err)
	}
	if err := r.rdb.Publish(ctx, Channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	return nil
}

func (r *Redis) Close() error { return r.rdb.Close() }
