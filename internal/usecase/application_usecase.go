package usecase

import (
	"context"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"recruitai/internal/domain/application"
)

type ApplicationListParams struct {
	FormID string
	Search string
	Status string
	JobID  string
}

type ApplicationList struct {
	Applications  []application.Application
	Total         int
	Source        application.Source
	RateLimited   bool
	UsingMockData bool
	FetchedAt     time.Time
}

type StatusChange struct {
	SubmissionID string
	Status       application.Status
	Remote       bool
}

type ApplicationUsecase interface {
	List(ctx context.Context, params ApplicationListParams) (ApplicationList, error)
	ForJob(ctx context.Context, jobID string) (ApplicationList, error)
	UpdateStatus(ctx context.Context, submissionID string, status string) (StatusChange, error)
}

// Applications serves review data. Review decisions are kept as local
// overrides on top of whatever batch the source returns.
type Applications struct {
	source SubmissionSource
	jobs   JobStore
	logger *log.Logger

	mu        sync.RWMutex
	overrides map[string]application.Status
}

func NewApplicationUsecase(source SubmissionSource, jobs JobStore, logger *log.Logger) *Applications {
	return &Applications{
		source:    source,
		jobs:      jobs,
		logger:    logger,
		overrides: make(map[string]application.Status),
	}
}

func (u *Applications) List(ctx context.Context, params ApplicationListParams) (ApplicationList, error) {
	var status application.Status
	if s := strings.TrimSpace(params.Status); s != "" && !strings.EqualFold(s, "all") {
		st, err := application.ParseStatus(s)
		if err != nil {
			return ApplicationList{}, ErrInvalidInput
		}
		status = st
	}

	var jobTitle string
	jobID := strings.TrimSpace(params.JobID)
	if jobID != "" && u.jobs != nil {
		if j, ok := u.jobs.Get(jobID); ok {
			jobTitle = j.Title
		}
	}

	res := u.source.FetchSubmissions(ctx, params.FormID)
	apps := u.applyOverrides(res.Applications)

	query := normalizeSearchValue(params.Search)
	out := make([]application.Application, 0, len(apps))
	for _, a := range apps {
		if status != "" && a.Status != status {
			continue
		}
		if jobID != "" && !a.BelongsTo(jobID, jobTitle) {
			continue
		}
		if query != "" && !matchesSearch(a, query) {
			continue
		}
		out = append(out, a)
	}
	return listFrom(res, out), nil
}

func (u *Applications) ForJob(ctx context.Context, jobID string) (ApplicationList, error) {
	j, ok := u.jobs.Get(strings.TrimSpace(jobID))
	if !ok {
		return ApplicationList{}, ErrNotFound
	}
	res := u.source.FetchSubmissionsByJob(ctx, j)
	return listFrom(res, u.applyOverrides(res.Applications)), nil
}

// UpdateStatus records a review decision. Repeating the same decision is
// a no-op apart from the best-effort provider notification.
func (u *Applications) UpdateStatus(ctx context.Context, submissionID string, status string) (StatusChange, error) {
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return StatusChange{}, ErrInvalidInput
	}
	st, err := application.ParseStatus(status)
	if err != nil || !st.IsUpdateTarget() {
		return StatusChange{}, ErrInvalidInput
	}

	remote := u.source.UpdateStatus(ctx, submissionID, st)

	u.mu.Lock()
	u.overrides[submissionID] = st
	u.mu.Unlock()

	if u.logger != nil {
		u.logger.Printf("[Applications] status updated submission_id=%s status=%s remote=%v", submissionID, st, remote.Remote)
	}
	return StatusChange{SubmissionID: submissionID, Status: st, Remote: remote.Remote}, nil
}

// Reset drops every local review decision.
func (u *Applications) Reset() {
	u.mu.Lock()
	u.overrides = make(map[string]application.Status)
	u.mu.Unlock()
}

func (u *Applications) applyOverrides(in []application.Application) []application.Application {
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make([]application.Application, len(in))
	copy(out, in)
	if len(u.overrides) == 0 {
		return out
	}
	for i := range out {
		if st, ok := u.overrides[out[i].ID]; ok {
			out[i].Status = st
		}
	}
	return out
}

func matchesSearch(a application.Application, query string) bool {
	if strings.Contains(strings.ToLower(a.Name), query) || strings.Contains(strings.ToLower(a.Email), query) {
		return true
	}
	return a.Score != nil && strings.Contains(strconv.Itoa(*a.Score), query)
}

func normalizeSearchValue(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func listFrom(res application.FetchResult, apps []application.Application) ApplicationList {
	return ApplicationList{
		Applications:  apps,
		Total:         len(apps),
		Source:        res.Source,
		RateLimited:   res.RateLimited,
		UsingMockData: res.UsingMockData(),
		FetchedAt:     res.FetchedAt,
	}
}
