package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Spacer enforces a minimum gap between calls made through it. It is a
// cooperative throttle for one client, not a quota.
type Spacer struct {
	lim *rate.Limiter
	now func() time.Time

	mu   sync.Mutex
	last time.Time
}

// NewSpacer returns a Spacer allowing one call per spacing. A zero or
// negative spacing disables waiting. now stamps LastCall and defaults to
// time.Now; the wait itself always runs on real time.
func NewSpacer(spacing time.Duration, now func() time.Time) *Spacer {
	if now == nil {
		now = time.Now
	}
	lim := rate.NewLimiter(rate.Inf, 1)
	if spacing > 0 {
		lim = rate.NewLimiter(rate.Every(spacing), 1)
	}
	return &Spacer{lim: lim, now: now}
}

func (s *Spacer) Wait(ctx context.Context) error {
	if err := s.lim.Wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.last = s.now()
	s.mu.Unlock()
	return nil
}

// LastCall is the time of the most recent permitted call.
func (s *Spacer) LastCall() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
