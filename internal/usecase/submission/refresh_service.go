// Package submission keeps the submission cache warm after the provider
// reports new entries.
package submission

import (
	"context"
	"log"
	"strings"
	"time"

	"recruitai/internal/domain/application"
)

type lockStore interface {
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

type source interface {
	InvalidateForm(ctx context.Context, formID string)
	FetchSubmissions(ctx context.Context, formID string) application.FetchResult
}

const (
	refreshLockPrefix  = "jotform:refresh:lock:"
	defaultLockTTL     = 30 * time.Second
	backgroundDeadline = 30 * time.Second
)

// RefreshService drops a form's cached batch and refetches it in the
// background. Refetches of one form are throttled with a lock in the
// shared store so a burst of webhook calls costs one provider request.
type RefreshService struct {
	source  source
	locks   lockStore
	logger  *log.Logger
	lockTTL time.Duration

	// done is called after a background refetch; nil outside tests.
	done func(application.FetchResult)
}

func NewRefreshService(src source, locks lockStore, logger *log.Logger, lockTTL time.Duration) *RefreshService {
	if lockTTL <= 0 {
		lockTTL = defaultLockTTL
	}
	return &RefreshService{source: src, locks: locks, logger: logger, lockTTL: lockTTL}
}

// Refresh invalidates formID and reports whether a refetch was started.
func (s *RefreshService) Refresh(ctx context.Context, formID string) bool {
	if s == nil || s.source == nil {
		return false
	}
	formID = strings.TrimSpace(formID)
	s.source.InvalidateForm(ctx, formID)

	lockAcquired := true
	if s.locks != nil {
		ok, err := s.locks.SetIfNotExists(ctx, refreshLockPrefix+formID, "1", s.lockTTL)
		if err == nil {
			lockAcquired = ok
		}
	}
	if !lockAcquired {
		return false
	}

	go func() {
		ctx2, cancel := context.WithTimeout(context.Background(), backgroundDeadline)
		defer cancel()

		res := s.source.FetchSubmissions(ctx2, formID)
		if s.logger != nil {
			s.logger.Printf("[Submissions] refreshed form_id=%q source=%s count=%d", formID, res.Source, len(res.Applications))
		}
		if s.done != nil {
			s.done(res)
		}
	}()
	return true
}
