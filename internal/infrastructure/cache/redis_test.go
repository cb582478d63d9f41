package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"recruitai/internal/config"
)

func TestRedis_Unreachable(t *testing.T) {
	// Port 1 is never a redis server; the dial fails fast.
	r := NewRedis(config.RedisConfig{Host: "127.0.0.1", Port: "1", KeyPrefix: "t:"}, nil)
	if r.Available() {
		t.Fatalf("expected unavailable client")
	}

	ctx := context.Background()
	if err := r.Ping(ctx); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("ping = %v", err)
	}
	var out map[string]any
	if hit, err := r.GetJSON(ctx, "k", &out); hit || err != nil {
		t.Fatalf("get = %v, %v", hit, err)
	}
	if err := r.SetJSON(ctx, "k", 1, time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ok, err := r.SetIfNotExists(ctx, "lock", "1", time.Second); ok || err != nil {
		t.Fatalf("setnx = %v, %v", ok, err)
	}
	if err := r.DeleteByPattern(ctx, "*"); err != nil {
		t.Fatalf("delete by pattern: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestRedis_KeyPrefix(t *testing.T) {
	r := NewRedisFromClient(nil, "recruitai:", nil)
	if got := r.key(SubmissionKey("f1")); got != "recruitai:"+SubmissionKey("f1") {
		t.Fatalf("key = %q", got)
	}
}
