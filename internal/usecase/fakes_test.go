package usecase

import (
	"context"
	"sync"
	"time"

	"recruitai/internal/domain/application"
	"recruitai/internal/domain/job"
	"recruitai/internal/infrastructure/jotform"
)

type fakeSource struct {
	mu       sync.Mutex
	result   application.FetchResult
	updates  []jotform.StatusUpdate
	fetches  int
	remoteOK bool
}

func (f *fakeSource) DefaultFormID() string { return "form-1" }

func (f *fakeSource) FetchSubmissions(context.Context, string) application.FetchResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	out := f.result
	out.Applications = append([]application.Application(nil), f.result.Applications...)
	return out
}

func (f *fakeSource) FetchSubmissionsByJob(ctx context.Context, j job.Job) application.FetchResult {
	res := f.FetchSubmissions(ctx, j.FormID)
	out := res.Applications[:0]
	for _, a := range res.Applications {
		if a.BelongsTo(j.ID, j.Title) {
			out = append(out, a)
		}
	}
	res.Applications = out
	return res
}

func (f *fakeSource) UpdateStatus(_ context.Context, id string, st application.Status) jotform.StatusUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := jotform.StatusUpdate{SubmissionID: id, Status: st, Remote: f.remoteOK}
	f.updates = append(f.updates, u)
	return u
}

func liveResult(apps ...application.Application) application.FetchResult {
	return application.FetchResult{
		Applications: apps,
		Source:       application.SourceLive,
		FetchedAt:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func sampleApplications() []application.Application {
	return []application.Application{
		{ID: "s1", Name: "Ada Lovelace", Email: "ada@example.com", Status: application.StatusNew, Score: application.IntPtr(91), JobTitle: "Engineer"},
		{ID: "s2", Name: "Alan Turing", Email: "alan@example.com", Status: application.StatusReviewed, Score: application.IntPtr(75), JobID: "job-b"},
		{ID: "s3", Name: "Grace Hopper", Email: "grace@navy.mil", Status: application.StatusNew, Score: application.IntPtr(68)},
	}
}
