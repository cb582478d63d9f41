package cache

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"
)

type memItem struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process Store. Expired keys are dropped lazily on access.
type Memory struct {
	mu    sync.Mutex
	items map[string]memItem
	now   func() time.Time
}

func NewMemory(now func() time.Time) *Memory {
	if now == nil {
		now = time.Now
	}
	return &Memory{items: make(map[string]memItem), now: now}
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) getLocked(key string) (memItem, bool) {
	it, ok := m.items[key]
	if !ok {
		return memItem{}, false
	}
	if !it.expiresAt.IsZero() && !m.now().Before(it.expiresAt) {
		delete(m.items, key)
		return memItem{}, false
	}
	return it, true
}

func (m *Memory) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	it, ok := m.getLocked(key)
	m.mu.Unlock()
	if !ok || len(it.value) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(it.value, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.items[key] = memItem{value: b, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

// DeleteByPattern accepts the glob syntax of path.Match, which covers the
// Redis patterns used in this module.
func (m *Memory) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.items {
		ok, err := path.Match(pattern, k)
		if err != nil {
			return err
		}
		if ok {
			delete(m.items, k)
		}
	}
	return nil
}

func (m *Memory) SetIfNotExists(_ context.Context, key string, value string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	b, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.getLocked(key); ok {
		return false, nil
	}
	m.items[key] = memItem{value: b, expiresAt: m.now().Add(ttl)}
	return true, nil
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
