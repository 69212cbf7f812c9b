package credstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKey = "lms-portal:credentials"

// RedisStore persists the credential record in Redis, for portals that
// run in a container where the filesystem doesn't survive restarts.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("credstore: redis ping failed: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Save(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("credstore: failed to marshal record: %w", err)
	}

	return r.client.Set(ctx, redisKey, data, 0).Err()
}

func (r *RedisStore) Load(ctx context.Context) (*Record, error) {
	val, err := r.client.Get(ctx, redisKey).Result()
	if err == redis.Nil {
		return nil, nil // nothing stored
	}
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, fmt.Errorf("credstore: failed to unmarshal record: %w", err)
	}

	return &rec, nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	return r.client.Del(ctx, redisKey).Err()
}
