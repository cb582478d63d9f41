package ws

import (
	"encoding/json"
	"time"

	"recruitai/internal/domain/application"
)

const (
	EventJobsUpdated        = "jobs_updated"
	EventSubmissionReceived = "submission_received"
)

type Event struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
}

type JobsUpdatedData struct {
	Count int `json:"count"`
}

type SubmissionReceivedData struct {
	SubmissionID string `json:"submission_id"`
	FormID       string `json:"form_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	JobID        string `json:"job_id,omitempty"`
	JobTitle     string `json:"job_title,omitempty"`
}

type broadcaster interface {
	Broadcast(message []byte)
}

// Notifier turns domain changes into hub events.
type Notifier struct {
	hub broadcaster
	now func() time.Time
}

func NewNotifier(hub broadcaster) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

// JobsUpdated is registered as a job registry listener; count is read from
// the registry at notification time.
func (n *Notifier) JobsUpdated(count int) {
	n.publish(EventJobsUpdated, JobsUpdatedData{Count: count})
}

func (n *Notifier) SubmissionReceived(a application.Application) {
	n.publish(EventSubmissionReceived, SubmissionReceivedData{
		SubmissionID: a.ID,
		FormID:       a.FormID,
		Name:         a.Name,
		Email:        a.Email,
		JobID:        a.JobID,
		JobTitle:     a.JobTitle,
	})
}

func (n *Notifier) publish(typ string, data any) {
	if n == nil || n.hub == nil {
		return
	}
	b, err := json.Marshal(Event{Type: typ, Timestamp: n.now().UTC().Format(time.RFC3339), Data: data})
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
