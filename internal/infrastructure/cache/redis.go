package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"recruitai/internal/config"
)

var ErrRedisUnavailable = errors.New("redis unavailable")

// scanBatch bounds both the SCAN page size and each UNLINK call.
const scanBatch = 200

// Redis is a Store shared by every instance. Keys are namespaced with the
// configured prefix, which callers never see.
type Redis struct {
	client *redis.Client
	prefix string
	logger *log.Logger

	warned atomic.Bool
}

// NewRedis connects to Redis. When the server cannot be reached the result
// reports !Available and every call degrades to a miss or a no-op.
func NewRedis(cfg config.RedisConfig, logger *log.Logger) *Redis {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(cfg.Port)
	if port == "" {
		port = "6379"
	}
	addr := net.JoinHostPort(host, port)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Printf("[Cache] redis unreachable addr=%s err=%v", addr, err)
		}
		_ = client.Close()
		return &Redis{prefix: cfg.KeyPrefix, logger: logger}
	}
	return NewRedisFromClient(client, cfg.KeyPrefix, logger)
}

func NewRedisFromClient(client *redis.Client, prefix string, logger *log.Logger) *Redis {
	return &Redis{client: client, prefix: prefix, logger: logger}
}

func (r *Redis) Available() bool { return r != nil && r.client != nil }

func (r *Redis) key(k string) string { return r.prefix + k }

// fail logs the first transport error only; a flapping server would
// otherwise flood the log.
func (r *Redis) fail(op string, err error) error {
	if r.logger != nil && r.warned.CompareAndSwap(false, true) {
		r.logger.Printf("[Cache] redis %s failed, further errors suppressed err=%v", op, err)
	}
	return err
}

func (r *Redis) Close() error {
	if !r.Available() {
		return nil
	}
	return r.client.Close()
}

func (r *Redis) Ping(ctx context.Context) error {
	if !r.Available() {
		return ErrRedisUnavailable
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if !r.Available() {
		return false, nil
	}
	b, err := r.client.Get(ctx, r.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, r.fail("get", err)
	case len(b) == 0:
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !r.Available() {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(key), b, ttl).Err(); err != nil {
		return r.fail("set", err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if !r.Available() {
		return nil
	}
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return r.fail("del", err)
	}
	return nil
}

// DeleteByPattern removes every key matching the glob pattern. Keys are
// collected with SCAN and unlinked in batches.
func (r *Redis) DeleteByPattern(ctx context.Context, pattern string) error {
	if !r.Available() {
		return nil
	}
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}

	iter := r.client.Scan(ctx, 0, r.key(pattern), scanBatch).Iterator()
	batch := make([]string, 0, scanBatch)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := r.client.Unlink(ctx, batch...).Err()
		batch = batch[:0]
		return err
	}
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			if err := flush(); err != nil {
				return r.fail("unlink", err)
			}
		}
	}
	if err := iter.Err(); err != nil {
		return r.fail("scan", err)
	}
	if err := flush(); err != nil {
		return r.fail("unlink", err)
	}
	return nil
}

func (r *Redis) SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	if !r.Available() {
		return false, nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	ok, err := r.client.SetNX(ctx, r.key(key), value, ttl).Result()
	if err != nil {
		return false, r.fail("setnx", err)
	}
	return ok, nil
}
