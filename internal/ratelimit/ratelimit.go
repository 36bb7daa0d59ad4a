// Package ratelimit throttles requests per client key, either in process
// (golang.org/x/time/rate) or across replicas through Redis.
package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

var ErrLimitExceeded = errors.New("rate limit exceeded")

// Limiter decides whether one more request for key may pass.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Close() error
}

// New returns a Redis limiter when cfg.RedisAddress is set, an in-memory
// token bucket otherwise, and a limiter that admits everything when RPS is
// zero.
func New(ctx context.Context, cfg config.RateLimit, log *logger.Logger) (Limiter, error) {
	if cfg.RPS <= 0 {
		log.Warn().Str("func", "ratelimit.New").Msg("rate limiting is disabled")
		return Unlimited{}, nil
	}

	if cfg.RedisAddress != "" {
		limiter, err := NewRedisLimiter(ctx, cfg)
		if err != nil {
			log.Err(err).Str("func", "ratelimit.New").Msg("failed to connect to redis")
			return nil, err
		}
		log.Info().
			Str("func", "ratelimit.New").
			Str("redis", cfg.RedisAddress).
			Int64("limit", limiter.limit).
			Dur("window", limiter.window).
			Msg("using redis rate limiter")
		return limiter, nil
	}

	log.Info().
		Str("func", "ratelimit.New").
		Float64("rps", cfg.RPS).
		Int("burst", cfg.Burst).
		Msg("using in-memory rate limiter")
	return NewMemoryLimiter(cfg.RPS, cfg.Burst), nil
}

// Unlimited admits every request.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string) (bool, error) { return true, nil }
func (Unlimited) Close() error                                { return nil }

// window converts a token bucket (rps, burst) into the fixed window that
// admits the same number of requests on average.
func window(rps float64, burst int) (int64, time.Duration) {
	if burst < 1 {
		burst = 1
	}
	win := time.Duration(float64(burst) / rps * float64(time.Second))
	if win < time.Millisecond {
		win = time.Millisecond
	}
	return int64(burst), win
}
