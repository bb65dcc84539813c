// Package redis holds the Redis-backed adapters: the promo code store and
// the order event publisher.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyNamespace = "commissions"

// EventsChannel is the pub/sub channel order events are published on.
const EventsChannel = keyNamespace + ":order-events"

// Options configures the connection.
type Options struct {
	URL          string
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewClient connects to Redis and verifies connectivity.
func NewClient(ctx context.Context, o Options) (*redis.Client, error) {
	if o.URL == "" {
		return nil, errors.New("redis url is required")
	}
	opts, err := redis.ParseURL(o.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	if o.PoolSize > 0 {
		opts.PoolSize = o.PoolSize
	}
	if o.DialTimeout > 0 {
		opts.DialTimeout = o.DialTimeout
	}
	if o.ReadTimeout > 0 {
		opts.ReadTimeout = o.ReadTimeout
	}
	if o.WriteTimeout > 0 {
		opts.WriteTimeout = o.WriteTimeout
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// PromoKey returns the hash key holding a promo code's settings.
func PromoKey(code string) string {
	return buildKey("promo", strings.ToUpper(strings.TrimSpace(code)))
}

func buildKey(parts ...string) string {
	return keyNamespace + ":" + strings.Join(parts, ":")
}
