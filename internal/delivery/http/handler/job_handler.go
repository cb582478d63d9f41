package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"recruitai/internal/delivery/http/dto"
	"recruitai/internal/delivery/http/middleware"
	"recruitai/internal/domain/job"
	"recruitai/internal/formlink"
	"recruitai/internal/pkg/response"
	"recruitai/internal/usecase"
)

type JobHandler struct {
	jobs  usecase.JobUsecase
	apps  usecase.ApplicationUsecase
	links *formlink.Builder
}

func NewJobHandler(jobs usecase.JobUsecase, apps usecase.ApplicationUsecase, links *formlink.Builder) *JobHandler {
	return &JobHandler{jobs: jobs, apps: apps, links: links}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Patch("/:id", h.Update)
	r.Delete("/:id", h.Delete)
	r.Get("/:id/form", h.Form)
	r.Get("/:id/applications", h.Applications)
}

func (h *JobHandler) toResponse(j job.Job) dto.JobResponse {
	res := dto.JobResponse{Job: j}
	if h.links != nil {
		res.Form = h.links.Link(j)
	}
	return res
}

func (h *JobHandler) List(c fiber.Ctx) error {
	jobs := h.jobs.List(c.Context())
	out := make([]dto.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, h.toResponse(j))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	j, err := h.jobs.Create(c.Context(), usecase.CreateJobInput{
		Title:       req.Title,
		Company:     req.Company,
		Experience:  req.Experience,
		Skills:      req.Skills,
		Description: req.Description,
		Status:      req.Status,
		FormID:      req.FormID,
	})
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job created", h.toResponse(j))
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	j, err := h.jobs.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.toResponse(j))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	var req dto.UpdateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	j, err := h.jobs.Update(c.Context(), c.Params("id"), usecase.UpdateJobInput{
		Title:       req.Title,
		Company:     req.Company,
		Experience:  req.Experience,
		Skills:      req.Skills,
		Description: req.Description,
		Status:      req.Status,
		FormID:      req.FormID,
	})
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.toResponse(j))
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	if err := h.jobs.Delete(c.Context(), c.Params("id")); err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job deleted", nil)
}

func (h *JobHandler) Form(c fiber.Ctx) error {
	j, link, err := h.jobs.FormLink(c.Context(), c.Params("id"))
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobFormResponse{
		JobID:    j.ID,
		JobTitle: j.Title,
		Form:     link,
		Fields:   formlink.ApplicationFields(),
	})
}

func (h *JobHandler) Applications(c fiber.Ctx) error {
	list, err := h.apps.ForJob(c.Context(), c.Params("id"))
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationListResponse(list))
}

func mapJobError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
