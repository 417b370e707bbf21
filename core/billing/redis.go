package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/councilkit/council/core/fanout"
)

// DefaultKeyPrefix namespaces usage hashes in Redis.
const DefaultKeyPrefix = "usage:"

// Redis accumulates usage in per-producer hashes, one HINCRBY per counter,
// executed in a single pipeline so a record is applied atomically.
type Redis struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// RedisOption configures the Redis recorder.
type RedisOption func(*Redis)

// WithKeyPrefix overrides the default "usage:" key prefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// WithTTL expires usage hashes after the given duration. Zero keeps them
// forever; use this when a downstream job drains the counters periodically.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// NewRedis creates a Redis-backed recorder on an existing client.
func NewRedis(client redis.UniversalClient, opts ...RedisOption) (*Redis, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	r := &Redis{
		client: client,
		prefix: DefaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Record implements Recorder.
func (r *Redis) Record(ctx context.Context, producerKey string, usage fanout.Usage) error {
	key := r.prefix + producerKey

	pipe := r.client.TxPipeline()
	pipe.HIncrBy(ctx, key, "prompt_tokens", int64(usage.PromptTokens))
	pipe.HIncrBy(ctx, key, "completion_tokens", int64(usage.CompletionTokens))
	pipe.HIncrBy(ctx, key, "requests", 1)
	if usage.Model != "" {
		pipe.HSet(ctx, key, "model", usage.Model)
	}
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record usage in redis: %w", err)
	}
	return nil
}
