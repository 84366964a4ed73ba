package events

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the Redis Streams sink
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	MaxLen   int64
}

// RedisSink appends events to a Redis stream named after the topic
type RedisSink struct {
	client *redis.Client
	maxLen int64
}

// NewRedisSink connects and pings Redis
func NewRedisSink(ctx context.Context, opts RedisOptions) (*RedisSink, error) {
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		return nil, errors.New("redis addr required")
	}
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 10000
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: opts.Password, DB: opts.DB})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisSink{client: client, maxLen: maxLen}, nil
}

// Send adds one stream entry; the stream is trimmed to roughly maxLen entries
func (r *RedisSink) Send(ctx context.Context, topic string, key, payload []byte) error {
	return r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: topic,
		MaxLen: r.maxLen,
		Approx: true,
		Values: map[string]any{
			"key":     string(key),
			"payload": string(payload),
		},
	}).Err()
}

// Close releases the client
func (r *RedisSink) Close() error {
	return r.client.Close()
}
