package seeder

import (
	"context"
	"log"

	"recruitai/internal/domain/job"
)

type jobRegistry interface {
	Create(d job.Draft) string
	Len() int
}

// JobSeeder creates a handful of demo postings. It does nothing when the
// registry already holds jobs, so running it twice is harmless.
type JobSeeder struct {
	Jobs    jobRegistry
	Company string
	Logger  *log.Logger
}

func (JobSeeder) Name() string { return "jobs" }

func (s JobSeeder) Run(ctx context.Context) error {
	if s.Jobs == nil || s.Jobs.Len() > 0 {
		return nil
	}

	for _, d := range DemoJobs(s.Company) {
		if err := ctx.Err(); err != nil {
			return err
		}
		id := s.Jobs.Create(d)
		if s.Logger != nil {
			s.Logger.Printf("[Seeder] job created id=%s title=%q", id, d.Title)
		}
	}
	return nil
}

// DemoJobs returns the seeded postings. Their titles match the demo
// fallback applications so the dashboard lines up when the provider is
// unavailable.
func DemoJobs(company string) []job.Draft {
	return []job.Draft{
		{
			Title:       "Senior Frontend Developer",
			Company:     company,
			Experience:  5,
			Skills:      []string{"React", "TypeScript", "CSS"},
			Description: "Own the candidate-facing web app and its design system.",
		},
		{
			Title:       "Backend Developer",
			Company:     company,
			Experience:  3,
			Skills:      []string{"Go", "PostgreSQL", "Redis"},
			Description: "Build the APIs and integrations behind the recruiting dashboard.",
		},
		{
			Title:       "Data Scientist",
			Company:     company,
			Experience:  4,
			Skills:      []string{"Python", "SQL", "Machine Learning"},
			Description: "Improve candidate scoring and hiring funnel analytics.",
		},
		{
			Title:       "DevOps Engineer",
			Company:     company,
			Experience:  3,
			Skills:      []string{"Docker", "Kubernetes", "CI/CD"},
			Description: "Run the deployment pipeline and production infrastructure.",
		},
		{
			Title:       "Product Manager",
			Company:     company,
			Experience:  4,
			Skills:      []string{"Roadmapping", "Analytics"},
			Description: "Shape the recruiter experience from sourcing to offer.",
		},
	}
}
