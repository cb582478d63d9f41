package jotform

import (
	"encoding/json"
	"strings"
)

// WebhookPayload is the subset of the provider's webhook form post we read.
// RawRequest holds the submitted answers as a JSON object keyed like
// "q3_name".
type WebhookPayload struct {
	SubmissionID string `json:"submissionID" form:"submissionID"`
	FormID       string `json:"formID" form:"formID"`
	FormTitle    string `json:"formTitle" form:"formTitle"`
	RawRequest   string `json:"rawRequest" form:"rawRequest"`
}

// Submission converts the payload into a raw submission. Webhook deliveries
// are always new. Undecodable answers are dropped.
func (p WebhookPayload) Submission() Submission {
	answers := map[string]any{}
	if raw := strings.TrimSpace(p.RawRequest); raw != "" {
		if err := json.Unmarshal([]byte(raw), &answers); err != nil {
			answers = map[string]any{}
		}
	}
	return Submission{
		ID:      strings.TrimSpace(p.SubmissionID),
		FormID:  strings.TrimSpace(p.FormID),
		New:     "1",
		Answers: answers,
	}
}
