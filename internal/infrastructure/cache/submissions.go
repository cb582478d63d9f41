package cache

import (
	"context"
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"recruitai/internal/domain/application"
)

const (
	SubmissionKeyPrefix  = "jotform:submissions:"
	DefaultSubmissionTTL = 5 * time.Minute
)

func SubmissionKey(formID string) string {
	return SubmissionKeyPrefix + formID
}

// SubmissionEntry is a cached fetch. It is valid only while now < ExpiresAt.
type SubmissionEntry struct {
	Data      []application.Application `json:"data"`
	CreatedAt time.Time                 `json:"created_at"`
	ExpiresAt time.Time                 `json:"expires_at"`
}

func (e SubmissionEntry) FreshAt(now time.Time) bool {
	return now.Before(e.ExpiresAt)
}

type SubmissionStats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// SubmissionCache holds normalized submission batches behind a Store.
type SubmissionCache struct {
	store  Store
	ttl    time.Duration
	now    func() time.Time
	logger *log.Logger

	mu   sync.Mutex
	keys map[string]time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

func NewSubmissionCache(store Store, ttl time.Duration, now func() time.Time, logger *log.Logger) *SubmissionCache {
	if ttl <= 0 {
		ttl = DefaultSubmissionTTL
	}
	if now == nil {
		now = time.Now
	}
	if store == nil {
		store = NewMemory(now)
	}
	return &SubmissionCache{
		store:  store,
		ttl:    ttl,
		now:    now,
		logger: logger,
		keys:   make(map[string]time.Time),
	}
}

func (c *SubmissionCache) TTL() time.Duration {
	return c.ttl
}

// Get returns the cached batch for key when it has not expired.
func (c *SubmissionCache) Get(ctx context.Context, key string) ([]application.Application, bool) {
	var e SubmissionEntry
	hit, err := c.store.GetJSON(ctx, key, &e)
	if err != nil && c.logger != nil {
		c.logger.Printf("[Cache] submission read error key=%s err=%v", key, err)
	}
	if err != nil || !hit || !e.FreshAt(c.now()) {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	if e.Data == nil {
		e.Data = []application.Application{}
	}
	return e.Data, true
}

func (c *SubmissionCache) Set(ctx context.Context, key string, data []application.Application) {
	now := c.now()
	e := SubmissionEntry{Data: data, CreatedAt: now, ExpiresAt: now.Add(c.ttl)}
	if err := c.store.SetJSON(ctx, key, e, c.ttl); err != nil {
		if c.logger != nil {
			c.logger.Printf("[Cache] submission write error key=%s err=%v", key, err)
		}
		return
	}
	c.mu.Lock()
	c.keys[key] = e.ExpiresAt
	c.mu.Unlock()
}

func (c *SubmissionCache) Delete(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, key); err != nil && c.logger != nil {
		c.logger.Printf("[Cache] submission delete error key=%s err=%v", key, err)
	}
	c.mu.Lock()
	delete(c.keys, key)
	c.mu.Unlock()
}

// Clear drops every submission entry, including ones written by other
// instances sharing the same Store.
func (c *SubmissionCache) Clear(ctx context.Context) {
	if err := c.store.DeleteByPattern(ctx, SubmissionKeyPrefix+"*"); err != nil && c.logger != nil {
		c.logger.Printf("[Cache] submission clear error err=%v", err)
	}
	c.mu.Lock()
	c.keys = make(map[string]time.Time)
	c.mu.Unlock()
}

// Keys lists the keys written through this instance, expired or not.
func (c *SubmissionCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.keys))
	for k := range c.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (c *SubmissionCache) Stats() SubmissionStats {
	c.mu.Lock()
	n := len(c.keys)
	c.mu.Unlock()
	return SubmissionStats{Entries: n, Hits: c.hits.Load(), Misses: c.misses.Load()}
}
