package handler

import (
	"github.com/gofiber/fiber/v3"

	"recruitai/internal/delivery/http/dto"
	"recruitai/internal/domain/job"
	"recruitai/internal/formlink"
	"recruitai/internal/pkg/response"
	"recruitai/internal/usecase"
)

// ApplyHandler serves the public candidate entry point of a posting.
type ApplyHandler struct {
	jobs usecase.JobUsecase
}

func NewApplyHandler(jobs usecase.JobUsecase) *ApplyHandler {
	return &ApplyHandler{jobs: jobs}
}

func (h *ApplyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/apply/:jobId", h.Get)
}

func (h *ApplyHandler) Get(c fiber.Ctx) error {
	j, link, err := h.jobs.FormLink(c.Context(), c.Params("jobId"))
	if err != nil {
		return mapJobError(err)
	}
	skills := j.Skills
	if skills == nil {
		skills = []string{}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ApplyResponse{
		JobID:                 j.ID,
		Title:                 j.Title,
		Company:               j.Company,
		Description:           j.Description,
		Skills:                skills,
		Experience:            j.Experience,
		AcceptingApplications: j.Status == job.StatusActive,
		Form:                  link,
		Fields:                formlink.ApplicationFields(),
	})
}
