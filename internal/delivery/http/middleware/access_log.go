package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	CtxRequestIDKey = "request_id"
)

// AccessLogMiddleware tags each request with an id and logs one line per
// request once the handler chain has finished. Paths in skip get the id but
// no log line.
type AccessLogMiddleware struct {
	logger *log.Logger
	skip   map[string]bool
}

func NewAccessLogMiddleware(logger *log.Logger, skipPaths ...string) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}
	return &AccessLogMiddleware{logger: logger, skip: skip}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)
		c.Locals(CtxRequestIDKey, rid)

		err := c.Next()
		if m.skip[c.Path()] {
			return err
		}

		user := "-"
		if id, ok := UserID(c); ok {
			user = id.String()
		}
		m.logger.Printf(
			"[HTTP] access rid=%s user=%s ip=%s method=%s path=%s status=%d latency=%s resp_bytes=%d",
			rid, user, c.IP(), c.Method(), c.OriginalURL(), c.Response().StatusCode(),
			time.Since(start).Round(time.Microsecond), len(c.Response().Body()),
		)
		return err
	}
}

// RequestID returns the id assigned by AccessLogMiddleware, or "".
func RequestID(c fiber.Ctx) string {
	rid, _ := c.Locals(CtxRequestIDKey).(string)
	return rid
}
