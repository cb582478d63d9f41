package handler

import (
	"github.com/gofiber/fiber/v3"

	"recruitai/internal/delivery/http/dto"
	"recruitai/internal/delivery/http/middleware"
	"recruitai/internal/pkg/response"
	"recruitai/internal/usecase"
)

type AnalyticsHandler struct {
	uc usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(uc usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func (h *AnalyticsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/analytics", h.Analytics)
	r.Get("/dashboard", h.Dashboard)
}

func (h *AnalyticsHandler) Analytics(c fiber.Ctx) error {
	rep, err := h.uc.Analytics(c.Context(), c.Query("form_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAnalyticsResponse(rep))
}

func (h *AnalyticsHandler) Dashboard(c fiber.Ctx) error {
	d, err := h.uc.Dashboard(c.Context(), c.Query("form_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewDashboardResponse(d))
}
