package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// redisRepository implements CartRepository on Redis string keys with an expiry.
type redisRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisRepository creates a Redis-backed cart repository. A zero ttl stores
// carts without expiry.
func NewRedisRepository(client *redis.Client, ttl time.Duration, logger zerolog.Logger) CartRepository {
	return &redisRepository{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("repository", "redis").Logger(),
	}
}

// Load returns the document stored under key.
func (r *redisRepository) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug().Str("key", key).Msg("cart not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("key", key).Msg("failed to get cart")
		return nil, fmt.Errorf("failed to get cart %s: %w", key, err)
	}

	return data, nil
}

// Save stores data under key, refreshing its expiry.
func (r *redisRepository) Save(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Error().Err(err).Str("key", key).Msg("failed to save cart")
		return fmt.Errorf("failed to save cart %s: %w", key, err)
	}

	r.logger.Debug().Str("key", key).Int("bytes", len(data)).Msg("cart saved")

	return nil
}

// Delete removes the document stored under key.
func (r *redisRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error().Err(err).Str("key", key).Msg("failed to delete cart")
		return fmt.Errorf("failed to delete cart %s: %w", key, err)
	}

	return nil
}
