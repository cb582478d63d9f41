package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"recruitai/internal/pkg/response"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness plus the state of each optional backend.
// A nil backend is reported as "disabled" and never fails the check.
type HealthHandler struct {
	appName string
	checks  map[string]Pinger
}

func NewHealthHandler(appName string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{appName: appName, checks: checks}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, p := range h.checks {
		if p == nil {
			deps[name] = "disabled"
			continue
		}
		if err := p.Ping(ctx); err != nil {
			deps[name] = "down"
			status = fiber.StatusServiceUnavailable
			continue
		}
		deps[name] = "up"
	}

	msg := response.MessageOK
	if status != fiber.StatusOK {
		msg = "degraded"
	}
	return response.Success(c, status, msg, fiber.Map{
		"app":          h.appName,
		"dependencies": deps,
		"time":         time.Now().UTC().Format(time.RFC3339),
	})
}
