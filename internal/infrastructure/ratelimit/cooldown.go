// Package ratelimit holds the throttling state used by provider clients:
// a cool-down that suppresses outbound calls after the provider reports
// throttling, and a spacer that keeps consecutive calls apart.
package ratelimit

import (
	"context"
	"log"
	"sync"
	"time"
)

// Cooldown records that a provider asked us to back off.
type Cooldown interface {
	// Active reports whether calls are suppressed and until when.
	Active(ctx context.Context) (bool, time.Time)
	Trip(ctx context.Context, d time.Duration)
	Reset(ctx context.Context)
}

// MemoryCooldown keeps the flag in process memory. It clears itself once
// the reset time has passed.
type MemoryCooldown struct {
	mu      sync.Mutex
	limited bool
	resetAt time.Time
	now     func() time.Time
}

func NewMemoryCooldown(now func() time.Time) *MemoryCooldown {
	if now == nil {
		now = time.Now
	}
	return &MemoryCooldown{now: now}
}

func (c *MemoryCooldown) Active(context.Context) (bool, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.limited && c.now().Before(c.resetAt) {
		return true, c.resetAt
	}
	c.limited = false
	return false, c.resetAt
}

func (c *MemoryCooldown) Trip(_ context.Context, d time.Duration) {
	c.mu.Lock()
	c.limited = true
	c.resetAt = c.now().Add(d)
	c.mu.Unlock()
}

func (c *MemoryCooldown) Reset(context.Context) {
	c.mu.Lock()
	c.limited = false
	c.resetAt = time.Time{}
	c.mu.Unlock()
}

// SharedStore is the subset of the Redis cache the shared cool-down needs.
type SharedStore interface {
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	Delete(ctx context.Context, key string) error
}

type sharedState struct {
	ResetAt time.Time `json:"reset_at"`
}

// SharedCooldown stores the flag in a SharedStore so every instance using
// the same key backs off together. Store errors read as "not limited".
type SharedCooldown struct {
	store  SharedStore
	key    string
	now    func() time.Time
	logger *log.Logger
}

func NewSharedCooldown(store SharedStore, key string, now func() time.Time, logger *log.Logger) *SharedCooldown {
	if now == nil {
		now = time.Now
	}
	return &SharedCooldown{store: store, key: key, now: now, logger: logger}
}

func (c *SharedCooldown) Active(ctx context.Context) (bool, time.Time) {
	var st sharedState
	hit, err := c.store.GetJSON(ctx, c.key, &st)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("[RateLimit] shared cooldown read error key=%s err=%v", c.key, err)
		}
		return false, time.Time{}
	}
	if !hit {
		return false, time.Time{}
	}
	return c.now().Before(st.ResetAt), st.ResetAt
}

func (c *SharedCooldown) Trip(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	st := sharedState{ResetAt: c.now().Add(d)}
	if err := c.store.SetJSON(ctx, c.key, st, d); err != nil && c.logger != nil {
		c.logger.Printf("[RateLimit] shared cooldown write error key=%s err=%v", c.key, err)
	}
}

func (c *SharedCooldown) Reset(ctx context.Context) {
	_ = c.store.Delete(ctx, c.key)
}

var (
	_ Cooldown = (*MemoryCooldown)(nil)
	_ Cooldown = (*SharedCooldown)(nil)
)
