package fiber

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"site-analytics-service/internal/tracking/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type fakeTrackEventUseCase struct {
	ExecuteFunc          func(ctx context.Context, in usecase.TrackEventInput) (string, error)
	BulkFunc             func(ctx context.Context, in usecase.BulkTrackEventsInput) (usecase.BulkTrackEventsResult, error)
	UpsertFunc           func(ctx context.Context, in usecase.UpsertSessionInput) (string, error)
	IncrementFunc        func(ctx context.Context, sessionID string) error
	LastExecuteInput     usecase.TrackEventInput
	LastUpsertInput      usecase.UpsertSessionInput
	LastIncrementSession string
}

func (f *fakeTrackEventUseCase) Execute(ctx context.Context, in usecase.TrackEventInput) (string, error) {
	f.LastExecuteInput = in
	if f.ExecuteFunc != nil {
		return f.ExecuteFunc(ctx, in)
	}
	return "", nil
}

func (f *fakeTrackEventUseCase) BulkTrackEvents(ctx context.Context, in usecase.BulkTrackEventsInput) (usecase.BulkTrackEventsResult, error) {
	if f.BulkFunc != nil {
		return f.BulkFunc(ctx, in)
	}
	return usecase.BulkTrackEventsResult{}, nil
}

func (f *fakeTrackEventUseCase) UpsertSession(ctx context.Context, in usecase.UpsertSessionInput) (string, error) {
	f.LastUpsertInput = in
	if f.UpsertFunc != nil {
		return f.UpsertFunc(ctx, in)
	}
	return "", nil
}

func (f *fakeTrackEventUseCase) IncrementPageViews(ctx context.Context, sessionID string) error {
	f.LastIncrementSession = sessionID
	if f.IncrementFunc != nil {
		return f.IncrementFunc(ctx, sessionID)
	}
	return nil
}

// helper: create fiber app and routes
func setupTestApp(uc TrackEventUseCase) *fiber.App {
	app := fiber.New()
	h := NewTrackingHandler(uc)

	app.Post("/track", h.TrackEvent)
	app.Post("/track/bulk", h.BulkTrackEvents)
	app.Post("/sessions", h.UpsertSession)
	app.Post("/sessions/:id/page-view", h.IncrementPageViews)

	return app
}

// helper: send request
func doRequest(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		buf = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	_ = resp.Body.Close()

	return resp, respBody
}

func TestTrackEvent_Created(t *testing.T) {
	sessionID := uuid.NewString()

	fakeUC := &fakeTrackEventUseCase{
		ExecuteFunc: func(ctx context.Context, in usecase.TrackEventInput) (string, error) {
			return "evt_1", nil
		},
	}

	app := setupTestApp(fakeUC)

	reqBody := TrackEventRequest{
		EventName: "page_view",
		SessionID: sessionID,
		Timestamp: time.Now().Add(-time.Minute).Unix(),
		Props:     map[string]any{"path": "/pricing"},
	}

	resp, body := doRequest(t, app, http.MethodPost, "/track", reqBody)

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusCreated, resp.StatusCode, string(body))
	}

	var respJSON map[string]any
	if err := json.Unmarshal(body, &respJSON); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}

	if respJSON["status"] != "created" {
		t.Errorf("expected status=created, got %v", respJSON["status"])
	}
	if respJSON["event_id"] != "evt_1" {
		t.Errorf("expected event_id=evt_1, got %v", respJSON["event_id"])
	}
	if fakeUC.LastExecuteInput.EventName != "page_view" {
		t.Errorf("usecase not called with request payload: %+v", fakeUC.LastExecuteInput)
	}
}

func TestTrackEvent_InvalidJSON(t *testing.T) {
	fakeUC := &fakeTrackEventUseCase{}
	app := setupTestApp(fakeUC)

	req := httptest.NewRequest(http.MethodPost, "/track", bytes.NewBufferString(`{"event_name":`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}

	if resp.StatusCode != http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusBadRequest, resp.StatusCode, string(body))
	}
}

func TestTrackEvent_ValidationError(t *testing.T) {
	fakeUC := &fakeTrackEventUseCase{
		ExecuteFunc: func(ctx context.Context, in usecase.TrackEventInput) (string, error) {
			return "", usecase.ErrInvalidEvent
		},
	}

	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, http.MethodPost, "/track", TrackEventRequest{
		EventName: "",
		SessionID: uuid.NewString(),
	})

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusBadRequest, resp.StatusCode, string(body))
	}

	var respJSON map[string]any
	if err := json.Unmarshal(body, &respJSON); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}

	if respJSON["error"] != "invalid_payload" {
		t.Errorf("expected error=invalid_payload, got %v", respJSON["error"])
	}
}

func TestTrackEvent_FutureTimeError(t *testing.T) {
	fakeUC := &fakeTrackEventUseCase{
		ExecuteFunc: func(ctx context.Context, in usecase.TrackEventInput) (string, error) {
			return "", usecase.ErrFutureTime
		},
	}

	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, http.MethodPost, "/track", TrackEventRequest{
		EventName: "page_view",
		SessionID: uuid.NewString(),
		Timestamp: time.Now().Add(time.Hour).Unix(),
	})

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusBadRequest, resp.StatusCode, string(body))
	}
}

func TestTrackEvent_InternalError(t *testing.T) {
	fakeUC := &fakeTrackEventUseCase{
		ExecuteFunc: func(ctx context.Context, in usecase.TrackEventInput) (string, error) {
			return "", errors.New("db error")
		},
	}

	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, http.MethodPost, "/track", TrackEventRequest{
		EventName: "page_view",
		SessionID: uuid.NewString(),
	})

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusInternalServerError, resp.StatusCode, string(body))
	}

	var respJSON map[string]any
	if err := json.Unmarshal(body, &respJSON); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}

	if respJSON["error"] != "internal_server_error" {
		t.Errorf("expected error=internal_server_error, got %v", respJSON["error"])
	}
}

// ---- Bulk tests ----

func TestBulkTrackEvents_Success(t *testing.T) {
	fakeUC := &fakeTrackEventUseCase{
		BulkFunc: func(ctx context.Context, in usecase.BulkTrackEventsInput) (usecase.BulkTrackEventsResult, error) {
			return usecase.BulkTrackEventsResult{Created: len(in.Events)}, nil
		},
	}

	app := setupTestApp(fakeUC)

	sessionID := uuid.NewString()
	reqBody := BulkTrackEventsRequest{
		Events: []TrackEventRequest{
			{EventName: "page_view", SessionID: sessionID},
			{EventName: "pricing_view", SessionID: sessionID},
		},
	}

	resp, body := doRequest(t, app, http.MethodPost, "/track/bulk", reqBody)

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusCreated, resp.StatusCode, string(body))
	}

	var respJSON map[string]any
	if err := json.Unmarshal(body, &respJSON); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}

	if int(respJSON["created"].(float64)) != 2 {
		t.Errorf("expected created=2, got %v", respJSON["created"])
	}
}

func TestBulkTrackEvents_EmptyEvents(t *testing.T) {
	fakeUC := &fakeTrackEventUseCase{}
	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, http.MethodPost, "/track/bulk", BulkTrackEventsRequest{})

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusBadRequest, resp.StatusCode, string(body))
	}

	var respJSON map[string]any
	if err := json.Unmarshal(body, &respJSON); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}

	if respJSON["error"] != "events_list_required" {
		t.Errorf("expected error=events_list_required, got %v", respJSON["error"])
	}
}

func TestBulkTrackEvents_ValidationError(t *testing.T) {
	fakeUC := &fakeTrackEventUseCase{
		BulkFunc: func(ctx context.Context, in usecase.BulkTrackEventsInput) (usecase.BulkTrackEventsResult, error) {
			return usecase.BulkTrackEventsResult{}, usecase.ErrInvalidEvent
		},
	}

	app := setupTestApp(fakeUC)

	reqBody := BulkTrackEventsRequest{
		Events: []TrackEventRequest{
			{EventName: "", SessionID: uuid.NewString()},
		},
	}

	resp, body := doRequest(t, app, http.MethodPost, "/track/bulk", reqBody)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusBadRequest, resp.StatusCode, string(body))
	}
}

// ---- Session tests ----

func TestUpsertSession_Success(t *testing.T) {
	sessionID := uuid.NewString()

	fakeUC := &fakeTrackEventUseCase{
		UpsertFunc: func(ctx context.Context, in usecase.UpsertSessionInput) (string, error) {
			return sessionID, nil
		},
	}

	app := setupTestApp(fakeUC)

	reqBody := UpsertSessionRequest{
		DeviceType:  "mobile",
		UTMSource:   "google",
		LandingPage: "/services/seo",
	}

	resp, body := doRequest(t, app, http.MethodPost, "/sessions", reqBody)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusOK, resp.StatusCode, string(body))
	}

	var respJSON map[string]any
	if err := json.Unmarshal(body, &respJSON); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}

	if respJSON["session_id"] != sessionID {
		t.Errorf("expected session_id=%s, got %v", sessionID, respJSON["session_id"])
	}
	if fakeUC.LastUpsertInput.UTMSource != "google" {
		t.Errorf("usecase not called with request payload: %+v", fakeUC.LastUpsertInput)
	}
}

func TestUpsertSession_ValidationError(t *testing.T) {
	fakeUC := &fakeTrackEventUseCase{
		UpsertFunc: func(ctx context.Context, in usecase.UpsertSessionInput) (string, error) {
			return "", usecase.ErrInvalidSession
		},
	}

	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, http.MethodPost, "/sessions", UpsertSessionRequest{
		DeviceType: "smartwatch",
	})

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusBadRequest, resp.StatusCode, string(body))
	}
}

// ---- Page view tests ----

func TestIncrementPageViews_NoContent(t *testing.T) {
	sessionID := uuid.NewString()
	fakeUC := &fakeTrackEventUseCase{}
	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, http.MethodPost, "/sessions/"+sessionID+"/page-view", nil)

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusNoContent, resp.StatusCode, string(body))
	}
	if fakeUC.LastIncrementSession != sessionID {
		t.Errorf("expected usecase called with %s, got %s", sessionID, fakeUC.LastIncrementSession)
	}
}

func TestIncrementPageViews_NotFound(t *testing.T) {
	fakeUC := &fakeTrackEventUseCase{
		IncrementFunc: func(ctx context.Context, sessionID string) error {
			return usecase.ErrSessionNotFound
		},
	}
	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, http.MethodPost, "/sessions/"+uuid.NewString()+"/page-view", nil)

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusNotFound, resp.StatusCode, string(body))
	}

	var respJSON map[string]any
	if err := json.Unmarshal(body, &respJSON); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}

	if respJSON["error"] != "session_not_found" {
		t.Errorf("expected error=session_not_found, got %v", respJSON["error"])
	}
}
