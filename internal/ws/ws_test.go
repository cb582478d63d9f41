package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recruitai/internal/domain/application"
)

type captureHub struct{ msgs [][]byte }

func (c *captureHub) Broadcast(b []byte) { c.msgs = append(c.msgs, b) }

func TestNotifier_Events(t *testing.T) {
	hub := &captureHub{}
	n := NewNotifier(hub)
	n.now = func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) }

	n.JobsUpdated(3)
	n.SubmissionReceived(application.Application{ID: "s1", FormID: "f1", Name: "Ada Lovelace", Email: "ada@example.com"})

	if len(hub.msgs) != 2 {
		t.Fatalf("messages = %d, want 2", len(hub.msgs))
	}
	var evt struct {
		Type      string         `json:"type"`
		Timestamp string         `json:"timestamp"`
		Data      map[string]any `json:"data"`
	}
	if err := json.Unmarshal(hub.msgs[0], &evt); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if evt.Type != EventJobsUpdated || evt.Data["count"] != float64(3) || evt.Timestamp != "2026-05-01T09:00:00Z" {
		t.Fatalf("jobs event = %+v", evt)
	}
	if err := json.Unmarshal(hub.msgs[1], &evt); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if evt.Type != EventSubmissionReceived || evt.Data["submission_id"] != "s1" || evt.Data["email"] != "ada@example.com" {
		t.Fatalf("submission event = %+v", evt)
	}
}

func TestNotifier_NilHub(t *testing.T) {
	var n *Notifier
	n.JobsUpdated(1)
	NewNotifier(nil).JobsUpdated(1)
}

func TestHub_BroadcastReachesClients(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	c := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(c)
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.Broadcast([]byte(`{"type":"jobs_updated"}`))
	select {
	case msg := <-c.send:
		if string(msg) != `{"type":"jobs_updated"}` {
			t.Fatalf("msg = %s", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("broadcast not delivered")
	}

	hub.Unregister(c)
	select {
	case _, ok := <-c.send:
		if ok {
			t.Fatalf("send channel should be closed after unregister")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("client not unregistered")
	}
}

func TestOriginChecker(t *testing.T) {
	req := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/ws/jobs", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	anyOrigin := originChecker(nil)
	if !anyOrigin(req("https://evil.example")) {
		t.Fatalf("empty allow-list should accept any origin")
	}

	check := originChecker([]string{" https://app.recruitai.io/ ", "http://localhost:3000"})
	tests := []struct {
		origin string
		want   bool
	}{
		{"https://app.recruitai.io", true},
		{"HTTPS://APP.RECRUITAI.IO", true},
		{"http://localhost:3000", true},
		{"http://localhost:3001", false},
		{"https://evil.example", false},
		{"", true},
	}
	for _, tt := range tests {
		if got := check(req(tt.origin)); got != tt.want {
			t.Fatalf("origin %q = %v, want %v", tt.origin, got, tt.want)
		}
	}

	if !originChecker([]string{"*"})(req("https://anything.example")) {
		t.Fatalf("* should accept any origin")
	}
}
