package usecase

import (
	"context"

	"recruitai/internal/domain/application"
	"recruitai/internal/domain/job"
	"recruitai/internal/infrastructure/jotform"
)

// SubmissionSource is the ingestion client as seen by the usecases.
type SubmissionSource interface {
	DefaultFormID() string
	FetchSubmissions(ctx context.Context, formID string) application.FetchResult
	FetchSubmissionsByJob(ctx context.Context, j job.Job) application.FetchResult
	UpdateStatus(ctx context.Context, submissionID string, status application.Status) jotform.StatusUpdate
}

// JobStore is the job registry as seen by the usecases.
type JobStore interface {
	Create(d job.Draft) string
	Get(id string) (job.Job, bool)
	List() []job.Job
	Update(id string, patch job.Patch) bool
	SetApplicantCount(id string, count int) bool
	Delete(id string) bool
}
