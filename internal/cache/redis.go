// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultQueueName is the Redis list (queue) name for game event records.
const DefaultQueueName = "uno_events"

// MinPopTimeout is the shortest BLPOP wait Redis supports; shorter waits are raised to it.
const MinPopTimeout = time.Second

// EventRecord holds the minimal info needed by the historian. ActionIndex
// counts within one session; a resumed game starts a new session.
type EventRecord struct {
	GameID      uuid.UUID              `json:"game_id"`
	SessionID   uuid.UUID              `json:"session_id"`
	ActionIndex int                    `json:"action_index"`
	ActionType  string                 `json:"action_type"`
	Player      string                 `json:"player,omitempty"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
	Timestamp   int64                  `json:"timestamp"`
}

// Connect returns a client for addr once it answers a ping.
func Connect(ctx context.Context, addr string, db int) (*redis.Client, error) {
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

// Publish serializes record to JSON and pushes it onto queue.
func Publish(ctx context.Context, rdb *redis.Client, queue string, record EventRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal EventRecord: %w", err)
	}
	if err := rdb.RPush(ctx, queue, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", queue, err)
	}
	return nil
}

// Pop blocks up to timeout, but at least MinPopTimeout, for the next record on
// queue. It returns nil, nil when the wait times out.
func Pop(ctx context.Context, rdb *redis.Client, queue string, timeout time.Duration) (*EventRecord, error) {
	if timeout < MinPopTimeout {
		timeout = MinPopTimeout
	}
	res, err := rdb.BLPop(ctx, timeout, queue).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("BLPop %s: %w", queue, err)
	}
	if len(res) < 2 {
		return nil, nil
	}

	// res[0] is the queue name and res[1] the payload.
	var record EventRecord
	if err := json.Unmarshal([]byte(res[1]), &record); err != nil {
		return nil, fmt.Errorf("invalid event record: %w", err)
	}
	return &record, nil
}
