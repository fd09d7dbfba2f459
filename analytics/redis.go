package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"folio/types"
)

const redisTimeout = 5 * time.Second

// RedisConfig configures the Redis connection and the sorted set key.
type RedisConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	Key      string
}

// zsetStore is the subset of the Redis client the counter needs.
type zsetStore interface {
	ZIncrBy(ctx context.Context, key string, increment float64, member string) *redis.FloatCmd
	ZScore(ctx context.Context, key, member string) *redis.FloatCmd
	ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) *redis.ZSliceCmd
}

// RedisCounter keeps per-path view totals in a Redis sorted set.
type RedisCounter struct {
	store  zsetStore
	closer func() error
	key    string
}

// NewRedisCounter connects to Redis and verifies connectivity.
func NewRedisCounter(ctx context.Context, cfg RedisConfig) (*RedisCounter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return newRedisCounter(client, client.Close, cfg.Key), nil
}

func newRedisCounter(store zsetStore, closer func() error, key string) *RedisCounter {
	if key == "" {
		key = "pageviews"
	}
	return &RedisCounter{store: store, closer: closer, key: key}
}

// Close closes the underlying Redis client.
func (r *RedisCounter) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer()
}

// Track increments the view total of the view's normalized path.
func (r *RedisCounter) Track(ctx context.Context, view types.PageView) error {
	path := NormalizePath(view.Path)
	if path == "" {
		return errors.New("page view has no path")
	}

	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	return r.store.ZIncrBy(ctx, r.key, 1, path).Err()
}

// Count returns the view total for path; unseen paths count zero.
func (r *RedisCounter) Count(ctx context.Context, path string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	score, err := r.store.ZScore(ctx, r.key, NormalizePath(path)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return int64(score), nil
}

// Top returns up to limit paths ordered by descending view total.
func (r *RedisCounter) Top(ctx context.Context, limit int) ([]types.PathCount, error) {
	if limit <= 0 {
		return []types.PathCount{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	entries, err := r.store.ZRevRangeWithScores(ctx, r.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	out := make([]types.PathCount, 0, len(entries))
	for _, z := range entries {
		member, ok := z.Member.(string)
		if !ok {
			member = fmt.Sprint(z.Member)
		}
		out = append(out, types.PathCount{Path: member, Views: int64(z.Score)})
	}
	return out, nil
}
