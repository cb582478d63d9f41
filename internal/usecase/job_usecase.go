package usecase

import (
	"context"
	"log"
	"strings"

	"recruitai/internal/domain/job"
	"recruitai/internal/formlink"
)

type CreateJobInput struct {
	Title       string
	Company     string
	Experience  int
	Skills      []string
	Description string
	Status      string
	FormID      string
}

type UpdateJobInput struct {
	Title       *string
	Company     *string
	Experience  *int
	Skills      []string
	Description *string
	Status      *string
	FormID      *string
}

type JobUsecase interface {
	Create(ctx context.Context, in CreateJobInput) (job.Job, error)
	Get(ctx context.Context, id string) (job.Job, error)
	List(ctx context.Context) []job.Job
	Update(ctx context.Context, id string, in UpdateJobInput) (job.Job, error)
	Delete(ctx context.Context, id string) error
	FormLink(ctx context.Context, id string) (job.Job, formlink.Link, error)
}

type Jobs struct {
	store  JobStore
	links  *formlink.Builder
	logger *log.Logger
}

func NewJobUsecase(store JobStore, links *formlink.Builder, logger *log.Logger) *Jobs {
	return &Jobs{store: store, links: links, logger: logger}
}

func (u *Jobs) Create(_ context.Context, in CreateJobInput) (job.Job, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.Experience < 0 {
		return job.Job{}, ErrInvalidInput
	}
	status := job.StatusActive
	if s := strings.TrimSpace(in.Status); s != "" {
		st, err := job.ParseStatus(s)
		if err != nil {
			return job.Job{}, ErrInvalidInput
		}
		status = st
	}

	formID := strings.TrimSpace(in.FormID)
	if formID == "" && u.links != nil && u.links.Provider() == formlink.ProviderJotForm {
		formID = u.links.FormIDFor("")
	}

	d := job.Draft{
		Title:       title,
		Company:     strings.TrimSpace(in.Company),
		Experience:  in.Experience,
		Skills:      in.Skills,
		Description: strings.TrimSpace(in.Description),
		FormID:      formID,
		Status:      status,
	}
	// Typeform ids derive from the job id.
	if formID == "" && u.links != nil {
		d.FormIDFor = u.links.FormIDFor
	}
	id := u.store.Create(d)

	created, ok := u.store.Get(id)
	if !ok {
		return job.Job{}, ErrNotFound
	}
	if u.logger != nil {
		u.logger.Printf("[Jobs] created id=%s title=%q status=%s", created.ID, created.Title, created.Status)
	}
	return created, nil
}

func (u *Jobs) Get(_ context.Context, id string) (job.Job, error) {
	j, ok := u.store.Get(strings.TrimSpace(id))
	if !ok {
		return job.Job{}, ErrNotFound
	}
	return j, nil
}

func (u *Jobs) List(context.Context) []job.Job {
	return u.store.List()
}

func (u *Jobs) Update(_ context.Context, id string, in UpdateJobInput) (job.Job, error) {
	id = strings.TrimSpace(id)
	patch := job.Patch{
		Title:       in.Title,
		Company:     in.Company,
		Experience:  in.Experience,
		Skills:      in.Skills,
		Description: in.Description,
		FormID:      in.FormID,
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return job.Job{}, ErrInvalidInput
	}
	if in.Experience != nil && *in.Experience < 0 {
		return job.Job{}, ErrInvalidInput
	}
	if in.Status != nil {
		st, err := job.ParseStatus(*in.Status)
		if err != nil {
			return job.Job{}, ErrInvalidInput
		}
		patch.Status = &st
	}
	if patch.IsEmpty() {
		return job.Job{}, ErrInvalidInput
	}

	if !u.store.Update(id, patch) {
		return job.Job{}, ErrNotFound
	}
	updated, ok := u.store.Get(id)
	if !ok {
		return job.Job{}, ErrNotFound
	}
	return updated, nil
}

func (u *Jobs) Delete(_ context.Context, id string) error {
	if !u.store.Delete(strings.TrimSpace(id)) {
		return ErrNotFound
	}
	if u.logger != nil {
		u.logger.Printf("[Jobs] deleted id=%s", id)
	}
	return nil
}

func (u *Jobs) FormLink(_ context.Context, id string) (job.Job, formlink.Link, error) {
	j, ok := u.store.Get(strings.TrimSpace(id))
	if !ok {
		return job.Job{}, formlink.Link{}, ErrNotFound
	}
	return j, u.links.Link(j), nil
}
