package v1

import (
	"github.com/gofiber/fiber/v3"

	"recruitai/internal/delivery/http/handler"
)

func RegisterJobs(r fiber.Router, jobHandler *handler.JobHandler) {
	if r == nil || jobHandler == nil {
		return
	}

	jobHandler.RegisterRoutes(r)
}
