package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisDriver struct {
	client *redis.Client
}

// NewRedisDriver keeps each slot as a plain string value without expiry.
func NewRedisDriver(client *redis.Client) Driver {
	return &redisDriver{
		client: client,
	}
}

func (d *redisDriver) Write(ctx context.Context, key string, value []byte) error {
	if err := d.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set redis value: %w", err)
	}

	return nil
}

func (d *redisDriver) Read(ctx context.Context, key string) ([]byte, error) {
	value, err := d.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get redis value: %w", err)
	}

	return value, nil
}

func (d *redisDriver) Remove(ctx context.Context, key string) error {
	if err := d.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to del redis value: %w", err)
	}

	return nil
}
