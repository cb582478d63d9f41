package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"recruitai/internal/delivery/http/dto"
	"recruitai/internal/delivery/http/middleware"
	"recruitai/internal/pkg/response"
	"recruitai/internal/usecase"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Patch("/:id/status", h.UpdateStatus)
}

// List accepts form_id, search, status ("all" for any) and job_id.
func (h *ApplicationHandler) List(c fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), usecase.ApplicationListParams{
		FormID: c.Query("form_id"),
		Search: c.Query("search"),
		Status: c.Query("status"),
		JobID:  c.Query("job_id"),
	})
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationListResponse(list))
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	ch, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusOK, "Status updated", dto.StatusChangeResponse{
		SubmissionID: ch.SubmissionID,
		Status:       ch.Status,
		RemoteSynced: ch.Remote,
	})
}

func mapApplicationError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status or filter", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
