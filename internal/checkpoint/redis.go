package checkpoint

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "checkpoint:"

// RedisStore keeps each checkpoint in a redis hash, one field per item.
// Useful when several runners share progress or the local filesystem is
// ephemeral.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects and pings the server before returning.
func NewRedisStore(addr, password string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func redisKey(langCode string, task int) string {
	return fmt.Sprintf("%s%s:task%d", redisKeyPrefix, langCode, task)
}

func (s *RedisStore) Load(ctx context.Context, langCode string, task int) (Results, error) {
	entries, err := s.client.HGetAll(ctx, redisKey(langCode, task)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load checkpoint from redis: %w", err)
	}
	return Results(entries), nil
}

func (s *RedisStore) Save(ctx context.Context, langCode string, task int, results Results) error {
	if len(results) == 0 {
		return nil
	}
	fields := make(map[string]string, len(results))
	for k, v := range results {
		fields[k] = v
	}
	if err := s.client.HSet(ctx, redisKey(langCode, task), fields).Err(); err != nil {
		return fmt.Errorf("failed to save checkpoint to redis: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
