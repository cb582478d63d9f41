package usecase

import (
	"context"
	"testing"
	"time"

	"recruitai/internal/domain/application"
	"recruitai/internal/domain/job"
	"recruitai/internal/jobstore"
)

func TestAnalytics_DashboardRecountsApplicants(t *testing.T) {
	src := &fakeSource{result: liveResult(sampleApplications()...)}
	ids := []string{"job-a", "job-b"}
	reg := jobstore.New(jobstore.WithIDFunc(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))
	reg.Create(job.Draft{Title: "Engineer"})
	reg.Create(job.Draft{Title: "Analyst"})

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	uc := NewAnalyticsUsecase(src, reg, nil, func() time.Time { return now }, nil)

	d, err := uc.Dashboard(context.Background(), "")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if d.Summary.TotalApplications != 3 || d.Summary.ActiveJobs != 2 || d.Summary.NewApplications != 2 {
		t.Fatalf("summary = %+v", d.Summary)
	}
	if d.Summary.AverageScore != 78 {
		t.Fatalf("average = %d, want 78", d.Summary.AverageScore)
	}
	if len(d.RecentApplications) != 3 {
		t.Fatalf("recent = %d", len(d.RecentApplications))
	}

	a, _ := reg.Get("job-a")
	b, _ := reg.Get("job-b")
	if a.ApplicantCount != 1 || b.ApplicantCount != 1 {
		t.Fatalf("counts = %d/%d, want 1/1", a.ApplicantCount, b.ApplicantCount)
	}
}

func TestAnalytics_DashboardSkipsRecountOnMockData(t *testing.T) {
	res := liveResult(application.Application{ID: "m1", JobID: "job-a", Synthetic: true})
	res.Source = application.SourceMock
	src := &fakeSource{result: res}
	reg := jobstore.New(jobstore.WithIDFunc(func() string { return "job-a" }))
	reg.Create(job.Draft{Title: "Engineer"})
	reg.SetApplicantCount("job-a", 7)

	d, err := NewAnalyticsUsecase(src, reg, nil, nil, nil).Dashboard(context.Background(), "")
	if err != nil || !d.UsingMockData {
		t.Fatalf("dashboard = %+v err=%v", d, err)
	}
	if j, _ := reg.Get("job-a"); j.ApplicantCount != 7 {
		t.Fatalf("count = %d, want unchanged 7", j.ApplicantCount)
	}
}

func TestAnalytics_UsesReviewOverrides(t *testing.T) {
	src := &fakeSource{result: liveResult(sampleApplications()...)}
	reg := jobstore.New()
	apps := NewApplicationUsecase(src, reg, nil)
	if _, err := apps.UpdateStatus(context.Background(), "s1", "rejected"); err != nil {
		t.Fatalf("update: %v", err)
	}

	rep, err := NewAnalyticsUsecase(src, reg, apps, nil, nil).Analytics(context.Background(), "")
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if rep.Summary.NewApplications != 1 {
		t.Fatalf("new = %d, want 1", rep.Summary.NewApplications)
	}
	found := false
	for _, s := range rep.Summary.Statuses {
		if s.Status == application.StatusRejected && s.Count == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("statuses = %+v", rep.Summary.Statuses)
	}
}

func TestAnalytics_EmptyInput(t *testing.T) {
	src := &fakeSource{result: liveResult()}
	rep, err := NewAnalyticsUsecase(src, jobstore.New(), nil, nil, nil).Analytics(context.Background(), "")
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	s := rep.Summary
	if s.TotalApplications != 0 || s.AverageScore != 0 || s.ActiveJobs != 0 || len(s.Monthly) != 0 || !s.Scores.Synthetic {
		t.Fatalf("summary = %+v", s)
	}
}

func TestAnalytics_CancelledContext(t *testing.T) {
	src := &fakeSource{result: liveResult(sampleApplications()...)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewAnalyticsUsecase(src, jobstore.New(), nil, nil, nil).Analytics(ctx, ""); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
