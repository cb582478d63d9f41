package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
)

const EventConnected = "connected"

// Handler upgrades subscribers of the live feed and hands them to the hub.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewHandler accepts upgrades from the listed origins. An empty list or
// "*" allows any origin.
func NewHandler(hub *Hub, allowedOrigins []string, logger *log.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	hosts := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		o = strings.ToLower(strings.TrimRight(strings.TrimSpace(o), "/"))
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		if o != "" {
			hosts[o] = true
		}
	}
	if len(hosts) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			// Non-browser clients send no Origin.
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return hosts[strings.ToLower(u.Scheme+"://"+u.Host)]
	}
}

// Subscribe serves GET /ws/jobs.
func (h *Handler) Subscribe(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	return adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			if h.logger != nil {
				h.logger.Printf("[WS] upgrade failed origin=%q err=%v", r.Header.Get("Origin"), err)
			}
			return
		}

		client := NewClient(h.hub, conn)
		if hello, err := json.Marshal(Event{Type: EventConnected, Timestamp: time.Now().UTC().Format(time.RFC3339)}); err == nil {
			client.send <- hello
		}
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})(c)
}
