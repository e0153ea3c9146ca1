// Package rdx sets up the shared Redis connection.
package rdx

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options builds client options from a REDIS_URL value, which may be a full
// redis:// URL or a bare host:port.
func Options(redisURL, password string) (*redis.Options, error) {
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		if password != "" {
			opts.Password = password
		}
		return opts, nil
	}
	return &redis.Options{
		Addr:     redisURL,
		Password: password, // Empty if no password
		DB:       0,
	}, nil
}

// Connect returns nil, nil when redisURL is empty: Redis is optional and the
// service runs single-instance without it.
func Connect(ctx context.Context, redisURL, password string) (*redis.Client, error) {
	if redisURL == "" {
		log.Println("REDIS_URL not set, running without Redis")
		return nil, nil
	}

	opts, err := Options(redisURL, password)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	log.Printf("Connected to Redis at %s", opts.Addr)
	return client, nil
}
