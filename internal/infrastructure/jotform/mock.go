package jotform

import (
	"fmt"
	"strings"
	"time"

	"recruitai/internal/domain/application"
)

type mockRecord struct {
	first, last, email string
	status             application.Status
	score              int
	jobTitle           string
}

var mockRecords = []mockRecord{
	{"John", "Smith", "john.smith@email.com", application.StatusNew, 92, "Senior Frontend Developer"},
	{"Sarah", "Johnson", "sarah.j@email.com", application.StatusReviewed, 88, "Product Manager"},
	{"Mike", "Chen", "mike.chen@email.com", application.StatusNew, 76, "UX Designer"},
	{"Emily", "Rodriguez", "emily.r@email.com", application.StatusSelected, 95, "Data Scientist"},
	{"David", "Wilson", "david.w@email.com", application.StatusRejected, 65, "Backend Developer"},
	{"Lisa", "Park", "lisa.park@email.com", application.StatusNew, 83, "Marketing Manager"},
	{"Alex", "Thompson", "alex.t@email.com", application.StatusReviewed, 91, "DevOps Engineer"},
	{"Maria", "Garcia", "maria.g@email.com", application.StatusSelected, 87, "UI/UX Designer"},
	{"Robert", "Lee", "robert.lee@email.com", application.StatusNew, 72, "Sales Representative"},
	{"Jennifer", "White", "jennifer.w@email.com", application.StatusRejected, 58, "Content Writer"},
	{"Kevin", "Brown", "kevin.b@email.com", application.StatusReviewed, 79, "Project Manager"},
	{"Amanda", "Davis", "amanda.d@email.com", application.StatusSelected, 94, "Software Engineer"},
}

// MockApplications returns the demo fallback set. Record i was submitted
// i days before now. Every record is marked Synthetic.
func MockApplications(now time.Time, formID string) []application.Application {
	out := make([]application.Application, 0, len(mockRecords))
	for i, r := range mockRecords {
		out = append(out, application.Application{
			ID:             fmt.Sprintf("mock-%d", i+1),
			Name:           strings.TrimSpace(r.first + " " + r.last),
			FirstName:      r.first,
			LastName:       r.last,
			Email:          r.email,
			SubmittedAt:    now.Add(-time.Duration(i) * 24 * time.Hour),
			FormID:         formID,
			Status:         r.status,
			JobID:          fmt.Sprintf("job-%d", i+1),
			JobTitle:       r.jobTitle,
			Score:          application.IntPtr(r.score),
			ScoreSynthetic: true,
			Synthetic:      true,
		})
	}
	return out
}
