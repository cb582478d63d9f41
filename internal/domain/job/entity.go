package job

import (
	"errors"
	"strings"
	"time"
)

type Status string

const (
	StatusActive Status = "Active"
	StatusClosed Status = "Closed"
	StatusDraft  Status = "Draft"
)

var ErrInvalidStatus = errors.New("invalid job status")

func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StatusActive, nil
	case "closed":
		return StatusClosed, nil
	case "draft":
		return StatusDraft, nil
	default:
		return "", ErrInvalidStatus
	}
}

type Job struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Company        string    `json:"company,omitempty"`
	Experience     int       `json:"experience"`
	Skills         []string  `json:"skills"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	Status         Status    `json:"status"`
	FormID         string    `json:"form_id,omitempty"`
	ApplicantCount int       `json:"applicant_count"`
}

// Draft holds the caller-supplied fields of a new posting.
type Draft struct {
	Title       string
	Company     string
	Experience  int
	Skills      []string
	Description string
	FormID      string
	// Status defaults to StatusActive.
	Status Status
	// FormIDFor derives the form id from the assigned job id when FormID
	// is empty.
	FormIDFor func(id string) string
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Title       *string
	Company     *string
	Experience  *int
	Skills      []string
	Description *string
	Status      *Status
	FormID      *string
}

func (p Patch) Apply(j Job) Job {
	if p.Title != nil {
		j.Title = strings.TrimSpace(*p.Title)
	}
	if p.Company != nil {
		j.Company = strings.TrimSpace(*p.Company)
	}
	if p.Experience != nil {
		j.Experience = *p.Experience
	}
	if p.Skills != nil {
		j.Skills = NormalizeSkills(p.Skills)
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Status != nil {
		j.Status = *p.Status
	}
	if p.FormID != nil {
		j.FormID = strings.TrimSpace(*p.FormID)
	}
	return j
}

func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Company == nil && p.Experience == nil && p.Skills == nil &&
		p.Description == nil && p.Status == nil && p.FormID == nil
}

// NormalizeSkills trims labels and drops empties and case-insensitive
// duplicates, keeping the first spelling seen.
func NormalizeSkills(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.Join(strings.Fields(s), " ")
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	return out
}

// Clone returns a copy that shares no slices with j.
func (j Job) Clone() Job {
	if j.Skills != nil {
		j.Skills = append([]string(nil), j.Skills...)
	}
	return j
}
