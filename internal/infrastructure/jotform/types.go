package jotform

import "encoding/json"

type apiResponse struct {
	ResponseCode int             `json:"responseCode"`
	Message      string          `json:"message"`
	Content      json.RawMessage `json:"content"`
	LimitLeft    *int            `json:"limit-left,omitempty"`
}

// Submission is a raw provider submission. Answers are keyed by question id
// and their shape depends on the question type.
type Submission struct {
	ID        string         `json:"id"`
	FormID    string         `json:"form_id"`
	IP        string         `json:"ip,omitempty"`
	CreatedAt string         `json:"created_at"`
	Status    string         `json:"status,omitempty"`
	New       any            `json:"new"`
	Flag      any            `json:"flag,omitempty"`
	Notes     string         `json:"notes,omitempty"`
	UpdatedAt *string        `json:"updated_at,omitempty"`
	Answers   map[string]any `json:"answers"`
}
