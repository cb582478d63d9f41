package dto

import (
	"recruitai/internal/domain/job"
	"recruitai/internal/formlink"
)

type CreateJobRequest struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Experience  int      `json:"experience"`
	Skills      []string `json:"skills"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	FormID      string   `json:"form_id"`
}

type UpdateJobRequest struct {
	Title       *string  `json:"title"`
	Company     *string  `json:"company"`
	Experience  *int     `json:"experience"`
	Skills      []string `json:"skills"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	FormID      *string  `json:"form_id"`
}

type JobResponse struct {
	job.Job
	Form formlink.Link `json:"form"`
}

type JobFormResponse struct {
	JobID    string           `json:"job_id"`
	JobTitle string           `json:"job_title"`
	Form     formlink.Link    `json:"form"`
	Fields   []formlink.Field `json:"fields"`
}

// ApplyResponse is the public view of a posting shown to candidates.
type ApplyResponse struct {
	JobID                 string           `json:"job_id"`
	Title                 string           `json:"title"`
	Company               string           `json:"company,omitempty"`
	Description           string           `json:"description"`
	Skills                []string         `json:"skills"`
	Experience            int              `json:"experience"`
	AcceptingApplications bool             `json:"accepting_applications"`
	Form                  formlink.Link    `json:"form"`
	Fields                []formlink.Field `json:"fields"`
}
