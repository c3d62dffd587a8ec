// Package redis constructs the shared Redis client.
package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"iqx_backend/internal/config"
)

// ErrNotConfigured is returned when no Redis address is configured.
var ErrNotConfigured = errors.New("redis address not configured")

// NewClient connects to Redis using the configured address. Callers are
// expected to treat a missing cache as non-fatal and run uncached.
func NewClient(cfg config.Config) (*redis.Client, error) {
	addr := cfg.RedisAddr()
	if addr == "" {
		return nil, ErrNotConfigured
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Error().Err(err).Str("address", addr).Msg("redis connection failed")
		return nil, err
	}

	log.Info().Str("address", addr).Msg("redis connection successful")
	return rdb, nil
}
