package submission

import (
	"context"
	"sync"
	"testing"
	"time"

	"recruitai/internal/domain/application"
	"recruitai/internal/infrastructure/cache"
)

type fakeSource struct {
	mu          sync.Mutex
	invalidated []string
	fetched     []string
}

func (f *fakeSource) InvalidateForm(_ context.Context, formID string) {
	f.mu.Lock()
	f.invalidated = append(f.invalidated, formID)
	f.mu.Unlock()
}

func (f *fakeSource) FetchSubmissions(_ context.Context, formID string) application.FetchResult {
	f.mu.Lock()
	f.fetched = append(f.fetched, formID)
	f.mu.Unlock()
	return application.FetchResult{Source: application.SourceLive}
}

func TestRefreshService_ThrottlesRefetch(t *testing.T) {
	src := &fakeSource{}
	s := NewRefreshService(src, cache.NewMemory(nil), nil, time.Minute)
	done := make(chan application.FetchResult, 2)
	s.done = func(r application.FetchResult) { done <- r }
	ctx := context.Background()

	if !s.Refresh(ctx, "form-1") {
		t.Fatalf("first refresh should start a refetch")
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("background refetch did not run")
	}

	if s.Refresh(ctx, "form-1") {
		t.Fatalf("second refresh within lock ttl should not refetch")
	}
	if !s.Refresh(ctx, "form-2") {
		t.Fatalf("other form should refetch")
	}
	<-done

	src.mu.Lock()
	defer src.mu.Unlock()
	if len(src.invalidated) != 3 {
		t.Fatalf("invalidations = %v, want 3", src.invalidated)
	}
	if len(src.fetched) != 2 {
		t.Fatalf("fetches = %v, want 2", src.fetched)
	}
}
