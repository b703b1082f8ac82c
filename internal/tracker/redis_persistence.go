package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisKey = "timeRecords"
	redisTimeout    = 3 * time.Second
)

// RedisPersistence stores the record collection as one JSON array value,
// with a small metadata hash next to it.
type RedisPersistence struct {
	client *redis.Client
	key    string
}

// NewRedisPersistence connects to addr and verifies the connection.
func NewRedisPersistence(addr string) (*RedisPersistence, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // no password set
		DB:       0,  // use default DB
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("✅ Connected to Redis at %s", addr)
	return NewRedisPersistenceWithClient(client, defaultRedisKey), nil
}

// NewRedisPersistenceWithClient wraps an existing client, storing records
// under key.
func NewRedisPersistenceWithClient(client *redis.Client, key string) *RedisPersistence {
	if key == "" {
		key = defaultRedisKey
	}
	return &RedisPersistence{client: client, key: key}
}

func (rp *RedisPersistence) metaKey() string {
	return rp.key + ":meta"
}

// Load reads the stored collection. A missing key is an empty collection.
func (rp *RedisPersistence) Load(ctx context.Context) ([]TimeRecord, error) {
	data, err := rp.client.Get(ctx, rp.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []TimeRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load records from Redis: %w", err)
	}

	var records []TimeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode records from Redis: %w", err)
	}
	return records, nil
}

// Save replaces the stored collection and its metadata in one transaction.
func (rp *RedisPersistence) Save(ctx context.Context, records []TimeRecord) error {
	if records == nil {
		records = []TimeRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}

	_, err = rp.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, rp.key, data, 0)
		pipe.HSet(ctx, rp.metaKey(), map[string]interface{}{
			"count":   len(records),
			"savedAt": time.Now().UTC().Format(time.RFC3339),
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save records to Redis: %w", err)
	}

	log.Printf("Saved %d time records to Redis", len(records))
	return nil
}

// SavedCount returns the record count written by the last Save.
func (rp *RedisPersistence) SavedCount(ctx context.Context) (int, error) {
	count, err := rp.client.HGet(ctx, rp.metaKey(), "count").Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load record metadata from Redis: %w", err)
	}
	return count, nil
}

// Close closes the Redis connection.
func (rp *RedisPersistence) Close() error {
	return rp.client.Close()
}
