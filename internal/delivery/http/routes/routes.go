package routes

import (
	"github.com/gofiber/fiber/v3"

	"recruitai/internal/delivery/http/handler"
	v1 "recruitai/internal/delivery/http/routes/v1"
	"recruitai/internal/ws"
)

type Registry struct {
	health  *handler.HealthHandler
	webhook *handler.WebhookHandler
	ws      *ws.Handler
	v1      v1.Handlers
	auth    fiber.Handler
}

func NewRegistry(health *handler.HealthHandler, webhook *handler.WebhookHandler, wsHandler *ws.Handler, api v1.Handlers, auth fiber.Handler) *Registry {
	return &Registry{health: health, webhook: webhook, ws: wsHandler, v1: api, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
	r.registerWS(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	if r.webhook != nil {
		r.webhook.RegisterRoutes(api)
	}
	v1.Register(api.Group("/v1"), r.v1, r.auth)
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.ws != nil {
		app.Get("/ws/jobs", r.ws.Subscribe)
	}
}
