package dto

import (
	"time"

	"recruitai/internal/analytics"
	"recruitai/internal/domain/application"
	"recruitai/internal/domain/job"
	"recruitai/internal/usecase"
)

type AnalyticsResponse struct {
	analytics.Summary
	Source        application.Source `json:"source"`
	RateLimited   bool               `json:"rate_limited"`
	UsingMockData bool               `json:"using_mock_data"`
	FetchedAt     time.Time          `json:"fetched_at"`
}

func NewAnalyticsResponse(r usecase.AnalyticsReport) AnalyticsResponse {
	return AnalyticsResponse{
		Summary:       r.Summary,
		Source:        r.Source,
		RateLimited:   r.RateLimited,
		UsingMockData: r.UsingMockData,
		FetchedAt:     r.FetchedAt,
	}
}

type DashboardResponse struct {
	AnalyticsResponse
	RecentApplications []application.Application `json:"recent_applications"`
	Jobs               []job.Job                 `json:"jobs"`
}

func NewDashboardResponse(d usecase.Dashboard) DashboardResponse {
	recent := d.RecentApplications
	if recent == nil {
		recent = []application.Application{}
	}
	jobs := d.Jobs
	if jobs == nil {
		jobs = []job.Job{}
	}
	return DashboardResponse{
		AnalyticsResponse:  NewAnalyticsResponse(d.AnalyticsReport),
		RecentApplications: recent,
		Jobs:               jobs,
	}
}
