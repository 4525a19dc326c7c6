package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"propertyhub-api/pkg/logger"
	"propertyhub-api/pkg/metrics"

	"github.com/go-redis/redis/v8"
)

// Store is the cache surface used by the services.
type Store interface {
	// Get decodes the value at key into dest; it returns ErrCacheMiss when absent.
	Get(ctx context.Context, key string, dest interface{}) error
	// Set stores value under key and registers key in each tag set.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration, tags ...string) error
	Delete(ctx context.Context, keys ...string) error
	// Invalidate drops every key registered under the given tags.
	Invalidate(ctx context.Context, tags ...string) error
}

// RedisStore keeps JSON-encoded values in Redis.
type RedisStore struct {
	client redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func observe(operation string, start time.Time) {
	metrics.RedisOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (s *RedisStore) Get(ctx context.Context, key string, dest interface{}) error {
	start := time.Now()
	val, err := s.client.Get(ctx, key).Bytes()
	observe("get", start)
	if errors.Is(err, redis.Nil) {
		metrics.CacheMissesTotal.Inc()
		return ErrCacheMiss
	}
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("get").Inc()
		logger.GlobalLogger.Errorf("failed to get key %s: %v", key, err)
		return opError("get", key, err)
	}
	if err := json.Unmarshal(val, dest); err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("get_unmarshal").Inc()
		logger.GlobalLogger.Errorf("failed to unmarshal value for key %s: %v", key, err)
		return opError("unmarshal", key, err)
	}
	metrics.CacheHitsTotal.Inc()
	return nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration, tags ...string) error {
	data, err := json.Marshal(value)
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("set_marshal").Inc()
		logger.GlobalLogger.Errorf("failed to marshal value for key %s: %v", key, err)
		return opError("marshal", key, err)
	}

	start := time.Now()
	if len(tags) == 0 {
		err = s.client.Set(ctx, key, data, ttl).Err()
		observe("set", start)
	} else {
		args := []interface{}{string(data), strconv.Itoa(int(ttl.Seconds()))}
		for _, tag := range tags {
			args = append(args, TagSetKey(tag))
		}
		err = setTaggedScript.Run(ctx, s.client, []string{key}, args...).Err()
		observe("set_tagged", start)
	}
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("set").Inc()
		logger.GlobalLogger.Errorf("failed to set key %s: %v", key, err)
		return opError("set", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	start := time.Now()
	err := s.client.Del(ctx, keys...).Err()
	observe("delete", start)
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("delete").Inc()
		logger.GlobalLogger.Errorf("failed to delete keys %v: %v", keys, err)
		return opError("delete", "", err)
	}
	return nil
}

func (s *RedisStore) Invalidate(ctx context.Context, tags ...string) error {
	for _, tag := range tags {
		start := time.Now()
		removed, err := invalidateTagScript.Run(ctx, s.client, []string{TagSetKey(tag)}).Int()
		observe("invalidate_tag", start)
		if err != nil {
			metrics.RedisErrorsTotal.WithLabelValues("invalidate_tag").Inc()
			logger.GlobalLogger.Errorf("failed to invalidate tag %s: %v", tag, err)
			return opError("invalidate", TagSetKey(tag), err)
		}
		logger.GlobalLogger.Debugf("invalidated %d cache keys for %s", removed, tag)
	}
	return nil
}

// NoopStore never holds anything; every Get misses.
type NoopStore struct{}

func (NoopStore) Get(context.Context, string, interface{}) error { return ErrCacheMiss }
func (NoopStore) Set(context.Context, string, interface{}, time.Duration, ...string) error {
	return nil
}
func (NoopStore) Delete(context.Context, ...string) error     { return nil }
func (NoopStore) Invalidate(context.Context, ...string) error { return nil }
