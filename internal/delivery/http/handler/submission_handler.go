package handler

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"recruitai/internal/infrastructure/jotform"
	"recruitai/internal/pkg/response"
)

// CacheAdmin exposes the ingestion client's cache and throttle state.
type CacheAdmin interface {
	CacheStatus(ctx context.Context) jotform.CacheStatus
	ClearCache(ctx context.Context)
	Reset(ctx context.Context)
}

type SubmissionHandler struct {
	admin CacheAdmin
}

func NewSubmissionHandler(admin CacheAdmin) *SubmissionHandler {
	return &SubmissionHandler{admin: admin}
}

func (h *SubmissionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/cache", h.Status)
	r.Delete("/cache", h.Clear)
}

func (h *SubmissionHandler) Status(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.admin.CacheStatus(c.Context()))
}

// Clear drops every cached batch. With reset=true the rate-limit
// cool-down is lifted as well.
func (h *SubmissionHandler) Clear(c fiber.Ctx) error {
	reset, _ := strconv.ParseBool(c.Query("reset"))
	if reset {
		h.admin.Reset(c.Context())
	} else {
		h.admin.ClearCache(c.Context())
	}
	return response.Success(c, fiber.StatusOK, "Cache cleared", h.admin.CacheStatus(c.Context()))
}
