package handler

import (
	"context"
	"crypto/subtle"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"recruitai/internal/domain/application"
	"recruitai/internal/infrastructure/jotform"
)

type SubmissionNormalizer interface {
	DefaultFormID() string
	Normalize(s jotform.Submission) application.Application
}

type CacheRefresher interface {
	Refresh(ctx context.Context, formID string) bool
}

type SubmissionNotifier interface {
	SubmissionReceived(a application.Application)
}

// WebhookHandler receives the provider's new-submission callbacks. The
// responses keep the provider-facing shape rather than SemanticResponse.
type WebhookHandler struct {
	normalizer SubmissionNormalizer
	refresher  CacheRefresher
	notifier   SubmissionNotifier
	secret     string
	now        func() time.Time
	logger     *log.Logger
}

func NewWebhookHandler(n SubmissionNormalizer, r CacheRefresher, notifier SubmissionNotifier, secret string, logger *log.Logger) *WebhookHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &WebhookHandler{
		normalizer: n,
		refresher:  r,
		notifier:   notifier,
		secret:     strings.TrimSpace(secret),
		now:        time.Now,
		logger:     logger,
	}
}

func (h *WebhookHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/jotform-webhook", h.Receive)
	r.Get("/jotform-webhook", h.Ping)
}

func (h *WebhookHandler) Receive(c fiber.Ctx) error {
	if !h.authorized(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid webhook secret"})
	}

	var payload jotform.WebhookPayload
	if err := c.Bind().Body(&payload); err != nil {
		h.logger.Printf("[Webhook] decode failed err=%v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to process webhook"})
	}

	sub := payload.Submission()
	formID := sub.FormID
	if formID == "" && h.normalizer != nil {
		formID = h.normalizer.DefaultFormID()
		sub.FormID = formID
	}
	h.logger.Printf("[Webhook] submission received submission_id=%s form_id=%s form_title=%q", sub.ID, formID, payload.FormTitle)

	if h.refresher != nil {
		h.refresher.Refresh(c.Context(), formID)
	}
	if h.notifier != nil && h.normalizer != nil && sub.ID != "" {
		h.notifier.SubmissionReceived(h.normalizer.Normalize(sub))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Webhook processed successfully"})
}

func (h *WebhookHandler) Ping(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   "JotForm webhook endpoint is active",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

// authorized checks the shared secret from the X-Webhook-Secret header or
// the secret query parameter. No configured secret accepts everything.
func (h *WebhookHandler) authorized(c fiber.Ctx) bool {
	if h.secret == "" {
		return true
	}
	got := c.Get("X-Webhook-Secret")
	if got == "" {
		got = c.Query("secret")
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) == 1
}
