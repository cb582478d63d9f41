package v1

import (
	"github.com/gofiber/fiber/v3"

	"recruitai/internal/delivery/http/handler"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Profile      *handler.ProfileHandler
	Jobs         *handler.JobHandler
	Applications *handler.ApplicationHandler
	Analytics    *handler.AnalyticsHandler
	Submissions  *handler.SubmissionHandler
	Apply        *handler.ApplyHandler
}

// Register mounts the v1 API. Auth and apply routes are public; everything
// else sits behind authMw.
func Register(r fiber.Router, h Handlers, authMw fiber.Handler) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}
	if h.Apply != nil {
		h.Apply.RegisterRoutes(r)
	}

	protected := r.Group("", authMw)
	RegisterProfile(protected, h.Profile)
	RegisterJobs(protected.Group("/jobs"), h.Jobs)
	if h.Applications != nil {
		h.Applications.RegisterRoutes(protected.Group("/applications"))
	}
	if h.Analytics != nil {
		h.Analytics.RegisterRoutes(protected)
	}
	if h.Submissions != nil {
		h.Submissions.RegisterRoutes(protected.Group("/submissions"))
	}
}
