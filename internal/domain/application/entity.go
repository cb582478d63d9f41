package application

import (
	"errors"
	"strings"
	"time"
)

type Status string

const (
	StatusNew      Status = "new"
	StatusReviewed Status = "reviewed"
	StatusSelected Status = "selected"
	StatusRejected Status = "rejected"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusNew, StatusReviewed, StatusSelected, StatusRejected}

var ErrInvalidStatus = errors.New("invalid application status")

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusNew, StatusReviewed, StatusSelected, StatusRejected:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

// IsUpdateTarget reports whether a reviewer may move a record into s.
func (s Status) IsUpdateTarget() bool {
	return s == StatusReviewed || s == StatusSelected || s == StatusRejected
}

const (
	MinScore = 0
	MaxScore = 100
)

// Application is a candidate submission normalized from provider data.
type Application struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	ResumeURL   string    `json:"resume_url,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
	FormID      string    `json:"form_id"`
	Status      Status    `json:"status"`
	JobID       string    `json:"job_id,omitempty"`
	JobTitle    string    `json:"job_title,omitempty"`
	Score       *int      `json:"score,omitempty"`

	// ScoreSynthetic marks a score fabricated at ingestion time rather
	// than supplied by the provider.
	ScoreSynthetic bool `json:"score_synthetic"`
	// Synthetic marks records that come from the demo fallback set.
	Synthetic bool `json:"synthetic"`

	RawAnswers map[string]any `json:"raw_answers,omitempty"`
}

func ClampScore(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// ScoreOrZero treats a missing score as 0.
func (a Application) ScoreOrZero() int {
	if a.Score == nil {
		return 0
	}
	return *a.Score
}

func IntPtr(v int) *int {
	return &v
}

// Source records where a fetched batch came from.
type Source string

const (
	SourceLive  Source = "live"
	SourceCache Source = "cache"
	SourceMock  Source = "mock"
)

type FetchResult struct {
	Applications []Application `json:"applications"`
	Source       Source        `json:"source"`
	RateLimited  bool          `json:"rate_limited"`
	FetchedAt    time.Time     `json:"fetched_at"`
}

// UsingMockData is true when the batch is demo data rather than provider data.
func (r FetchResult) UsingMockData() bool {
	return r.Source == SourceMock
}

// BelongsTo reports whether the record was submitted for the given job.
// A provider-supplied job id wins; without one the job title is compared
// case-insensitively.
func (a Application) BelongsTo(jobID, jobTitle string) bool {
	if a.JobID != "" {
		return jobID != "" && a.JobID == jobID
	}
	t := strings.TrimSpace(a.JobTitle)
	return t != "" && strings.EqualFold(t, strings.TrimSpace(jobTitle))
}
