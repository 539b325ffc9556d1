package paramstore

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"taskboard/internal/core/ports"
)

const keyPrefix = "taskboard:view:"

// RedisStore keeps one view's parameters in a Redis hash. Every parameter
// holds a single value, which is all the filter contract uses.
type RedisStore struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

var _ ports.ParamStore = (*RedisStore)(nil)

func NewRedisStore(rdb *redis.Client, viewID string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		rdb: rdb,
		key: keyPrefix + viewID + ":params",
		ttl: ttl,
	}
}

func NewRedisFactory(rdb *redis.Client, ttl time.Duration) ports.ParamStoreFactory {
	return func(ctx context.Context, viewID string, initial url.Values) (ports.ParamStore, error) {
		store := NewRedisStore(rdb, viewID, ttl)
		if err := store.Seed(ctx, initial); err != nil {
			return nil, err
		}
		return store, nil
	}
}

// Seed replaces the stored parameters with initial.
func (s *RedisStore) Seed(ctx context.Context, initial url.Values) error {
	set := make(map[string]interface{}, len(initial))
	for key := range initial {
		set[key] = initial.Get(key)
	}
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(set) > 0 {
			pipe.HSet(ctx, s.key, set)
		}
		if s.ttl > 0 {
			pipe.Expire(ctx, s.key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed view params: %w", err)
	}
	return nil
}

func (s *RedisStore) Values(ctx context.Context) (url.Values, error) {
	fields, err := s.rdb.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("read view params: %w", err)
	}
	values := url.Values{}
	for key, value := range fields {
		values.Set(key, value)
	}
	return values, nil
}

func (s *RedisStore) Apply(ctx context.Context, set map[string]string, remove []string) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(set) > 0 {
			pipe.HSet(ctx, s.key, hashFields(set))
		}
		if len(remove) > 0 {
			pipe.HDel(ctx, s.key, remove...)
		}
		if s.ttl > 0 {
			pipe.Expire(ctx, s.key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write view params: %w", err)
	}
	return nil
}

// Touch restarts the expiry of the hash.
func (s *RedisStore) Touch(ctx context.Context) error {
	if s.ttl <= 0 {
		return nil
	}
	if err := s.rdb.Expire(ctx, s.key, s.ttl).Err(); err != nil {
		return fmt.Errorf("touch view params: %w", err)
	}
	return nil
}

func (s *RedisStore) Drop(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("drop view params: %w", err)
	}
	return nil
}

func hashFields(set map[string]string) map[string]interface{} {
	fields := make(map[string]interface{}, len(set))
	for key, value := range set {
		fields[key] = value
	}
	return fields
}
