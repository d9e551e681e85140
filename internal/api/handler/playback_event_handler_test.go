package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streamvault/streaming-api/internal/core/domain"
	"github.com/streamvault/streaming-api/internal/core/ports"
)

type stubDispatcher struct {
	events []ports.PlaybackProgressEvent
}

func (d *stubDispatcher) Enqueue(event ports.PlaybackProgressEvent) {
	d.events = append(d.events, event)
}

func (d *stubDispatcher) EnqueueBatch(events []ports.PlaybackProgressEvent) {
	d.events = append(d.events, events...)
}

func newEventContext(t *testing.T, path, body string, identity *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set("identity", identity)
	}
	return c, rec
}

func TestReceiveStampsCallerOnBeacon(t *testing.T) {
	dispatcher := &stubDispatcher{}
	h := NewPlaybackEventHandler(dispatcher)

	body := `{"playback_id":"pb1","progress_seconds":600,"timestamp":"2026-08-25T10:00:00Z","source":"web"}`
	c, rec := newEventContext(t, "/v1/playback-events", body, &domain.Identity{
		UserID: "u1",
		Role:   domain.RoleMember,
	})

	if err := h.Receive(c); err != nil {
		t.Fatalf("Receive() error = %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	if len(dispatcher.events) != 1 {
		t.Fatalf("enqueued = %d events, want 1", len(dispatcher.events))
	}

	event := dispatcher.events[0]
	if event.UserID != "u1" {
		t.Fatalf("UserID = %q, want the authenticated caller", event.UserID)
	}
	if event.PlaybackID != "pb1" || event.ProgressSeconds != 600 || event.Source != "web" {
		t.Fatalf("event = %+v", event)
	}
	if !event.Timestamp.Equal(time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("Timestamp = %v", event.Timestamp)
	}
}

func TestReceiveRequiresIdentity(t *testing.T) {
	h := NewPlaybackEventHandler(&stubDispatcher{})

	body := `{"playback_id":"pb1","progress_seconds":600,"timestamp":"2026-08-25T10:00:00Z","source":"web"}`
	c, _ := newEventContext(t, "/v1/playback-events", body, nil)

	err := h.Receive(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("Receive() error = %v, want 401", err)
	}
}

func TestReceiveBatchStampsCallerOnEveryBeacon(t *testing.T) {
	dispatcher := &stubDispatcher{}
	h := NewPlaybackEventHandler(dispatcher)

	body := `[
		{"playback_id":"pb1","progress_seconds":600,"timestamp":"2026-08-25T10:00:00Z","source":"web"},
		{"playback_id":"pb2","progress_seconds":30,"timestamp":"2026-08-25T10:00:10Z","source":"tv"}
	]`
	c, rec := newEventContext(t, "/v1/playback-events/batch", body, &domain.Identity{
		UserID: "u1",
		Role:   domain.RoleMember,
	})

	if err := h.ReceiveBatch(c); err != nil {
		t.Fatalf("ReceiveBatch() error = %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	if len(dispatcher.events) != 2 {
		t.Fatalf("enqueued = %d events, want 2", len(dispatcher.events))
	}
	for i, event := range dispatcher.events {
		if event.UserID != "u1" {
			t.Fatalf("event[%d].UserID = %q, want the authenticated caller", i, event.UserID)
		}
	}
}

func TestReceiveBatchRejectsEmptyBatch(t *testing.T) {
	h := NewPlaybackEventHandler(&stubDispatcher{})

	c, _ := newEventContext(t, "/v1/playback-events/batch", `[]`, &domain.Identity{
		UserID: "u1",
		Role:   domain.RoleMember,
	})

	err := h.ReceiveBatch(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("ReceiveBatch() error = %v, want 400", err)
	}
}
