// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jason-s-yu/bidquiz/internal/game"
	"github.com/jason-s-yu/bidquiz/internal/models"
	"github.com/redis/go-redis/v9"
)

// DefaultQueueName is the Redis list game events are pushed to.
const DefaultQueueName = "bidquiz_events"

// ConnectRedis opens a client against addr and pings it.
func ConnectRedis(ctx context.Context, addr string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// EventQueue publishes game events onto a Redis list for the historian to drain.
type EventQueue struct {
	rdb   *redis.Client
	queue string
}

var _ game.EventPublisher = (*EventQueue)(nil)

// NewEventQueue wraps rdb. An empty queue name falls back to DefaultQueueName.
func NewEventQueue(rdb *redis.Client, queue string) *EventQueue {
	if queue == "" {
		queue = DefaultQueueName
	}
	return &EventQueue{rdb: rdb, queue: queue}
}

// Queue returns the list name events are pushed to.
func (q *EventQueue) Queue() string {
	return q.queue
}

// Publish serializes ev to JSON and RPushes it.
func (q *EventQueue) Publish(ctx context.Context, ev models.GameEvent) error {
	data, err := EncodeEvent(ev)
	if err != nil {
		return err
	}
	if err := q.rdb.RPush(ctx, q.queue, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", q.queue, err)
	}
	return nil
}

// EncodeEvent is the wire format shared with the historian.
func EncodeEvent(ev models.GameEvent) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal game event: %w", err)
	}
	return data, nil
}

// DecodeEvent parses one queue entry.
func DecodeEvent(data []byte) (models.GameEvent, error) {
	var ev models.GameEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return ev, fmt.Errorf("invalid game event: %w", err)
	}
	return ev, nil
}
