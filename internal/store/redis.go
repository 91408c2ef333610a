package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisProgressKey is the hash holding learner progress.
const RedisProgressKey = "lexplanet:progress"

// RedisProgress keeps Progress in a Redis (or Dragonfly) hash so several
// machines can share one learner's map.
type RedisProgress struct {
	client *redis.Client
	key    string
}

// ParseRedisURL validates a Redis connection URL.
func ParseRedisURL(url string) (*redis.Options, error) {
	if url == "" {
		return nil, fmt.Errorf("redis URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return opts, nil
}

// OpenRedisProgress connects to url and verifies the connection.
func OpenRedisProgress(ctx context.Context, url string) (*RedisProgress, error) {
	opts, err := ParseRedisURL(url)
	if err != nil {
		return nil, err
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &RedisProgress{client: client, key: RedisProgressKey}, nil
}

// Close shuts down the redis client.
func (r *RedisProgress) Close() error {
	return r.client.Close()
}

func (r *RedisProgress) LoadProgress(ctx context.Context) (Progress, error) {
	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return Progress{}, fmt.Errorf("load progress: %w", err)
	}

	var out Progress
	if v, ok := fields[keyMaxUnlockedLevel]; ok {
		if out.MaxUnlockedLevel, err = strconv.Atoi(v); err != nil {
			return Progress{}, fmt.Errorf("parse %s: %w", keyMaxUnlockedLevel, err)
		}
	}
	if v, ok := fields[keyScore]; ok {
		if out.Score, err = strconv.Atoi(v); err != nil {
			return Progress{}, fmt.Errorf("parse %s: %w", keyScore, err)
		}
	}
	return out, nil
}

func (r *RedisProgress) SaveProgress(ctx context.Context, p Progress) error {
	err := r.client.HSet(ctx, r.key, map[string]any{
		keyMaxUnlockedLevel: p.MaxUnlockedLevel,
		keyScore:            p.Score,
	}).Err()
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (r *RedisProgress) ResetProgress(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}
