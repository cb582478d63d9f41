package usecase

import (
	"context"
	"log"
	"time"

	"recruitai/internal/analytics"
	"recruitai/internal/domain/application"
	"recruitai/internal/domain/job"
)

type AnalyticsReport struct {
	Summary       analytics.Summary
	Source        application.Source
	RateLimited   bool
	UsingMockData bool
	FetchedAt     time.Time
}

type Dashboard struct {
	AnalyticsReport
	RecentApplications []application.Application
	Jobs               []job.Job
}

type AnalyticsUsecase interface {
	Analytics(ctx context.Context, formID string) (AnalyticsReport, error)
	Dashboard(ctx context.Context, formID string) (Dashboard, error)
}

const recentApplicationsLimit = 5

type Analytics struct {
	source SubmissionSource
	jobs   JobStore
	apps   *Applications
	now    func() time.Time
	logger *log.Logger
}

// NewAnalyticsUsecase builds the aggregate views. apps, when set, supplies
// local review decisions so the aggregates match the review screen.
func NewAnalyticsUsecase(source SubmissionSource, jobs JobStore, apps *Applications, now func() time.Time, logger *log.Logger) *Analytics {
	if now == nil {
		now = time.Now
	}
	return &Analytics{source: source, jobs: jobs, apps: apps, now: now, logger: logger}
}

func (u *Analytics) load(ctx context.Context, formID string) (application.FetchResult, []job.Job, error) {
	if err := ctx.Err(); err != nil {
		return application.FetchResult{}, nil, err
	}
	res := u.source.FetchSubmissions(ctx, formID)
	jobs := u.jobs.List()
	if u.apps != nil {
		res.Applications = u.apps.applyOverrides(res.Applications)
	}
	return res, jobs, nil
}

func (u *Analytics) report(res application.FetchResult, jobs []job.Job) AnalyticsReport {
	return AnalyticsReport{
		Summary:       analytics.Summarize(res.Applications, jobs, u.now()),
		Source:        res.Source,
		RateLimited:   res.RateLimited,
		UsingMockData: res.UsingMockData(),
		FetchedAt:     res.FetchedAt,
	}
}

func (u *Analytics) Analytics(ctx context.Context, formID string) (AnalyticsReport, error) {
	res, jobs, err := u.load(ctx, formID)
	if err != nil {
		return AnalyticsReport{}, err
	}
	return u.report(res, jobs), nil
}

// Dashboard also refreshes each job's applicant count from the batch.
// Counts are not recomputed from demo data.
func (u *Analytics) Dashboard(ctx context.Context, formID string) (Dashboard, error) {
	res, jobs, err := u.load(ctx, formID)
	if err != nil {
		return Dashboard{}, err
	}

	if !res.UsingMockData() {
		counts := analytics.CountByJob(res.Applications, jobs)
		changed := false
		for i := range jobs {
			n := counts[jobs[i].ID]
			if jobs[i].ApplicantCount == n {
				continue
			}
			if u.jobs.SetApplicantCount(jobs[i].ID, n) {
				jobs[i].ApplicantCount = n
				changed = true
			}
		}
		if changed && u.logger != nil {
			u.logger.Printf("[Analytics] applicant counts refreshed jobs=%d", len(jobs))
		}
	}

	recent := make([]application.Application, 0, recentApplicationsLimit)
	for _, a := range res.Applications {
		if len(recent) == recentApplicationsLimit {
			break
		}
		recent = append(recent, a)
	}

	return Dashboard{
		AnalyticsReport:    u.report(res, jobs),
		RecentApplications: recent,
		Jobs:               jobs,
	}, nil
}
