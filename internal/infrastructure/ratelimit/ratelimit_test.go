package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestMemoryCooldown(t *testing.T) {
	clk := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryCooldown(clk.Now)
	ctx := context.Background()

	if on, _ := c.Active(ctx); on {
		t.Fatalf("fresh cooldown must be inactive")
	}

	c.Trip(ctx, time.Minute)
	clk.Advance(59 * time.Second)
	on, resetAt := c.Active(ctx)
	if !on {
		t.Fatalf("cooldown should be active before reset time")
	}
	if want := clk.Now().Add(time.Second); !resetAt.Equal(want) {
		t.Fatalf("reset at = %v, want %v", resetAt, want)
	}

	clk.Advance(time.Second)
	if on, _ := c.Active(ctx); on {
		t.Fatalf("cooldown should clear at reset time")
	}
}

func TestMemoryCooldown_Reset(t *testing.T) {
	c := NewMemoryCooldown(nil)
	ctx := context.Background()
	c.Trip(ctx, time.Hour)
	c.Reset(ctx)
	if on, _ := c.Active(ctx); on {
		t.Fatalf("reset cooldown must be inactive")
	}
}

type mapStore struct {
	m   map[string][]byte
	err error
}

func (s *mapStore) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	if s.err != nil {
		return s.err
	}
	b, _ := json.Marshal(value)
	s.m[key] = b
	return nil
}

func (s *mapStore) GetJSON(_ context.Context, key string, out any) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	b, ok := s.m[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (s *mapStore) Delete(_ context.Context, key string) error {
	delete(s.m, key)
	return nil
}

func TestSharedCooldown_SharedBetweenInstances(t *testing.T) {
	clk := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := &mapStore{m: map[string][]byte{}}
	a := NewSharedCooldown(store, "rl:jotform", clk.Now, nil)
	b := NewSharedCooldown(store, "rl:jotform", clk.Now, nil)
	ctx := context.Background()

	a.Trip(ctx, time.Minute)
	if on, _ := b.Active(ctx); !on {
		t.Fatalf("second instance should observe the cooldown")
	}
	clk.Advance(time.Minute)
	if on, _ := b.Active(ctx); on {
		t.Fatalf("cooldown should be over")
	}
}

func TestSharedCooldown_StoreErrorReadsInactive(t *testing.T) {
	store := &mapStore{m: map[string][]byte{}, err: errors.New("down")}
	c := NewSharedCooldown(store, "k", nil, nil)
	if on, _ := c.Active(context.Background()); on {
		t.Fatalf("store errors must not block calls")
	}
}

func TestSpacer_ZeroSpacingDoesNotWait(t *testing.T) {
	s := NewSpacer(0, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	for i := 0; i < 5; i++ {
		if err := s.Wait(ctx); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}
	if s.LastCall().IsZero() {
		t.Fatalf("last call not recorded")
	}
}

func TestSpacer_LastCallUsesClock(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewSpacer(0, func() time.Time { return at })
	if err := s.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if got := s.LastCall(); !got.Equal(at) {
		t.Fatalf("last call = %v, want %v", got, at)
	}
}

func TestSpacer_EnforcesGap(t *testing.T) {
	s := NewSpacer(40*time.Millisecond, nil)
	ctx := context.Background()

	start := time.Now()
	_ = s.Wait(ctx)
	_ = s.Wait(ctx)
	if el := time.Since(start); el < 30*time.Millisecond {
		t.Fatalf("second call came after %s, want >= ~40ms", el)
	}
}

func TestSpacer_CancelledContext(t *testing.T) {
	s := NewSpacer(time.Hour, nil)
	_ = s.Wait(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Wait(ctx); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
