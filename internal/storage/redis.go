package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrFailedToConnectToRedis is returned when all retry attempts are exhausted.
var ErrFailedToConnectToRedis = errors.New("failed to connect to redis")

// RedisConfig holds Redis connection configuration.
// Redis is optional: when ConnectionURL is empty the service keeps sessions
// in MongoDB instead.
type RedisConfig struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:""`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"5s"`
}

// Enabled reports whether a Redis URL is configured.
func (c RedisConfig) Enabled() bool {
	return c.ConnectionURL != ""
}

// ConnectRedis creates a Redis client, verifying connectivity with a ping
// and retrying transient failures until the attempts are exhausted.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid url: %w", ErrFailedToConnectToRedis, err)
	}

	client := redis.NewClient(opts)

	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				_ = client.Close()
				return nil, errors.Join(ErrFailedToConnectToRedis, ctx.Err())
			case <-time.After(cfg.RetryInterval):
			}
		}

		pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			lastErr = err
			continue
		}

		return client, nil
	}

	_ = client.Close()
	return nil, fmt.Errorf("%w after %d attempts: %w", ErrFailedToConnectToRedis, attempts, lastErr)
}

// RedisHealthcheck returns a health check function pinging the server.
func RedisHealthcheck(client *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
