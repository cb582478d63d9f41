package v1

import (
	"github.com/gofiber/fiber/v3"

	"recruitai/internal/delivery/http/handler"
)

func RegisterProfile(r fiber.Router, profileHandler *handler.ProfileHandler) {
	if r == nil || profileHandler == nil {
		return
	}

	profileHandler.RegisterRoutes(r)
}
