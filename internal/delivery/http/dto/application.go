package dto

import (
	"time"

	"recruitai/internal/domain/application"
	"recruitai/internal/usecase"
)

type ApplicationListResponse struct {
	Applications  []application.Application `json:"applications"`
	Total         int                       `json:"total"`
	Source        application.Source        `json:"source"`
	RateLimited   bool                      `json:"rate_limited"`
	UsingMockData bool                      `json:"using_mock_data"`
	FetchedAt     time.Time                 `json:"fetched_at"`
}

func NewApplicationListResponse(l usecase.ApplicationList) ApplicationListResponse {
	apps := l.Applications
	if apps == nil {
		apps = []application.Application{}
	}
	return ApplicationListResponse{
		Applications:  apps,
		Total:         l.Total,
		Source:        l.Source,
		RateLimited:   l.RateLimited,
		UsingMockData: l.UsingMockData,
		FetchedAt:     l.FetchedAt,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type StatusChangeResponse struct {
	SubmissionID string             `json:"submission_id"`
	Status       application.Status `json:"status"`
	RemoteSynced bool               `json:"remote_synced"`
}
