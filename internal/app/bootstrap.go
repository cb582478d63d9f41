package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	"recruitai/internal/delivery/http/handler"
	"recruitai/internal/delivery/http/middleware"
	"recruitai/internal/delivery/http/routes"
	v1 "recruitai/internal/delivery/http/routes/v1"
	"recruitai/internal/ws"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application on top of an initialised container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, starts the websocket hub and returns the
// app with a cleanup func that stops both.
func Bootstrap(ctx context.Context, c *Container) (*App, func() error) {
	hubCtx, cancel := context.WithCancel(ctx)
	go c.Hub.Run(hubCtx)

	a := New(c)
	return a, func() error {
		cancel()
		return c.Close()
	}
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	app.Use(middleware.NewAccessLogMiddleware(c.Logger, "/health").Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	checks := map[string]handler.Pinger{"cache": c.Store, "database": c.DB}

	authMw := middleware.NewAuthMiddleware(c.Auth)
	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.Config.App.AppName, checks),
		handler.NewWebhookHandler(c.JotForm, c.Refresh, c.Notifier, c.Config.App.WebhookSecret, c.Logger),
		ws.NewHandler(c.Hub, c.Config.App.WSAllowedOrigins, c.Logger),
		v1.Handlers{
			Auth:         handler.NewAuthHandler(c.Auth),
			Profile:      handler.NewProfileHandler(c.Profiles),
			Jobs:         handler.NewJobHandler(c.JobUC, c.Applications, c.Links),
			Applications: handler.NewApplicationHandler(c.Applications),
			Analytics:    handler.NewAnalyticsHandler(c.Analytics),
			Submissions:  handler.NewSubmissionHandler(c.JotForm),
			Apply:        handler.NewApplyHandler(c.JobUC),
		},
		authMw.Middleware(),
	)
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
