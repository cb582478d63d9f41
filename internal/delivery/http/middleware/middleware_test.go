package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"recruitai/internal/pkg/jwt"
	"recruitai/internal/pkg/response"
)

func decode(t *testing.T, resp *http.Response) response.SemanticResponse {
	t.Helper()
	defer resp.Body.Close()
	var out response.SemanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestErrorMiddleware(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(NewErrorMiddleware(log.New(&buf, "", 0)).Middleware())
	app.Get("/bad", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusBadRequest, "", nil, nil)
	})
	app.Get("/boom", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "db exploded", nil, errors.New("secret detail"))
	})
	app.Get("/fiber", func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusConflict, "taken")
	})
	app.Get("/panic", func(c fiber.Ctx) error {
		panic("kaboom")
	})

	tests := []struct {
		path   string
		status int
		msg    string
	}{
		{"/bad", fiber.StatusBadRequest, response.MessageBadRequest},
		{"/boom", fiber.StatusInternalServerError, response.MessageInternalServerError},
		{"/fiber", fiber.StatusConflict, "taken"},
		{"/panic", fiber.StatusInternalServerError, response.MessageInternalServerError},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
		if err != nil {
			t.Fatalf("%s: %v", tt.path, err)
		}
		body := decode(t, resp)
		if resp.StatusCode != tt.status || body.Status != tt.status || body.Message != tt.msg {
			t.Fatalf("%s = %d %+v, want %d %q", tt.path, resp.StatusCode, body, tt.status, tt.msg)
		}
	}

	logs := buf.String()
	if !strings.Contains(logs, "secret detail") || !strings.Contains(logs, "kaboom") {
		t.Fatalf("5xx causes should be logged, got %q", logs)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer   abc  ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer ", "", false},
		{"abc", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := BearerToken(tt.header)
		if got != tt.token || ok != tt.ok {
			t.Fatalf("BearerToken(%q) = %q,%v want %q,%v", tt.header, got, ok, tt.token, tt.ok)
		}
	}
}

type fakeAuth struct {
	id  uuid.UUID
	err error
}

func (f fakeAuth) Authenticate(context.Context, string) (jwt.Claims, error) {
	if f.err != nil {
		return jwt.Claims{}, f.err
	}
	return jwt.Claims{UserID: f.id, Email: "a@b.c", TokenType: jwt.TokenTypeAccess}, nil
}

func TestAuthMiddleware(t *testing.T) {
	id := uuid.New()
	newApp := func(auth Authenticator) *fiber.App {
		app := fiber.New()
		app.Use(NewErrorMiddleware(log.New(&bytes.Buffer{}, "", 0)).Middleware())
		app.Use(NewAuthMiddleware(auth).Middleware())
		app.Get("/me", func(c fiber.Ctx) error {
			uid, ok := UserID(c)
			if !ok {
				return fiber.ErrUnauthorized
			}
			return c.SendString(uid.String())
		})
		return app
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	resp, err := newApp(fakeAuth{id: id}).Test(req)
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	if resp.StatusCode != fiber.StatusOK || buf.String() != id.String() {
		t.Fatalf("ok = %d %q", resp.StatusCode, buf.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	resp, err = newApp(fakeAuth{err: jwt.ErrTokenExpired}).Test(req)
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	if body := decode(t, resp); resp.StatusCode != fiber.StatusUnauthorized || body.Message != "Token expired" {
		t.Fatalf("expired = %d %+v", resp.StatusCode, body)
	}
}

func TestAccessLogMiddleware_RequestID(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(NewAccessLogMiddleware(log.New(&buf, "", 0)).Middleware())
	app.Get("/", func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "rid-1")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	resp.Body.Close()
	if resp.Header.Get(HeaderRequestID) != "rid-1" {
		t.Fatalf("request id not echoed: %q", resp.Header.Get(HeaderRequestID))
	}
	if !strings.Contains(buf.String(), "rid=rid-1") || !strings.Contains(buf.String(), "status=204") {
		t.Fatalf("access log = %q", buf.String())
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	resp.Body.Close()
	if _, err := uuid.Parse(resp.Header.Get(HeaderRequestID)); err != nil {
		t.Fatalf("generated request id = %q", resp.Header.Get(HeaderRequestID))
	}
}

func TestAccessLogMiddleware_SkipPaths(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(NewAccessLogMiddleware(log.New(&buf, "", 0), "/health").Middleware())
	app.Get("/health", func(c fiber.Ctx) error { return c.SendString(RequestID(c)) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	defer resp.Body.Close()
	var body bytes.Buffer
	_, _ = body.ReadFrom(resp.Body)
	if body.Len() == 0 || body.String() != resp.Header.Get(HeaderRequestID) {
		t.Fatalf("request id %q not exposed to handler (header %q)", body.String(), resp.Header.Get(HeaderRequestID))
	}
	if buf.Len() != 0 {
		t.Fatalf("skipped path was logged: %q", buf.String())
	}
}
