package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"site-analytics-service/internal/tracking/core/domain"
)

// fakeResult implements sql.Result for tests.
type fakeResult struct {
	rowsAffected int64
}

func (f *fakeResult) LastInsertId() (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeResult) RowsAffected() (int64, error) {
	return f.rowsAffected, nil
}

// fakeDB implements DB interface for tests.
type fakeDB struct {
	ExecFn     func(ctx context.Context, query string, args ...any) (sql.Result, error)
	lastQuery  string
	lastArgs   []any
	execCalled bool
}

func (f *fakeDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.execCalled = true
	f.lastQuery = query
	f.lastArgs = args
	if f.ExecFn != nil {
		return f.ExecFn(ctx, query, args...)
	}
	return &fakeResult{rowsAffected: 1}, nil
}

// ------------------------------------------------------------
// EVENT INSERT
// ------------------------------------------------------------

func TestTrackingRepository_InsertEvent(t *testing.T) {
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO analytics_events") {
				t.Fatalf("unexpected query: %s", query)
			}
			return &fakeResult{rowsAffected: 1}, nil
		},
	}

	repo := NewTrackingRepository(db)

	e := &domain.Event{
		ID:         "evt_1",
		EventName:  "page_view",
		SessionID:  "sess_1",
		UserID:     "user_1",
		OccurredAt: time.Now().UTC(),
		Props:      map[string]any{"path": "/pricing"},
	}

	if err := repo.InsertEvent(context.Background(), e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !db.execCalled {
		t.Fatalf("expected ExecContext to be called")
	}
	if len(db.lastArgs) != 6 {
		t.Fatalf("expected 6 args, got %d", len(db.lastArgs))
	}

	// props go over the wire as JSON
	propsJSON, ok := db.lastArgs[5].([]byte)
	if !ok || !strings.Contains(string(propsJSON), `"path":"/pricing"`) {
		t.Fatalf("expected marshalled props, got %v", db.lastArgs[5])
	}
}

func TestTrackingRepository_InsertEvent_EmptyUserIsNull(t *testing.T) {
	db := &fakeDB{}
	repo := NewTrackingRepository(db)

	e := &domain.Event{
		ID:         "evt_1",
		EventName:  "page_view",
		SessionID:  "sess_1",
		OccurredAt: time.Now().UTC(),
		Props:      map[string]any{},
	}

	if err := repo.InsertEvent(context.Background(), e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.lastArgs[3] != nil {
		t.Fatalf("expected NULL user_id, got %v", db.lastArgs[3])
	}
}

func TestTrackingRepository_InsertEvent_Error(t *testing.T) {
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return nil, errors.New("db error")
		},
	}

	repo := NewTrackingRepository(db)

	e := &domain.Event{
		ID:         "evt_1",
		EventName:  "page_view",
		SessionID:  "sess_1",
		OccurredAt: time.Now().UTC(),
		Props:      map[string]any{},
	}

	if err := repo.InsertEvent(context.Background(), e); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

// ------------------------------------------------------------
// SESSION UPSERT
// ------------------------------------------------------------

func TestTrackingRepository_UpsertSession(t *testing.T) {
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO analytics_sessions") {
				t.Fatalf("unexpected query: %s", query)
			}
			if !strings.Contains(query, "ON CONFLICT (id) DO UPDATE") {
				t.Fatalf("expected upsert, got: %s", query)
			}
			return &fakeResult{rowsAffected: 1}, nil
		},
	}

	repo := NewTrackingRepository(db)

	s := &domain.Session{
		ID:         "sess_1",
		StartedAt:  time.Now().UTC(),
		DeviceType: "mobile",
		UTMSource:  "google",
	}

	if err := repo.UpsertSession(context.Background(), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.lastArgs) != 13 {
		t.Fatalf("expected 13 args, got %d", len(db.lastArgs))
	}
	// empty attributes are stored as NULL, not ""
	if db.lastArgs[4] != "google" {
		t.Fatalf("expected utm_source google, got %v", db.lastArgs[4])
	}
	if db.lastArgs[5] != nil {
		t.Fatalf("expected NULL utm_medium, got %v", db.lastArgs[5])
	}
}

// ------------------------------------------------------------
// PAGE VIEW INCREMENT
// ------------------------------------------------------------

func TestTrackingRepository_IncrementPageViews_Found(t *testing.T) {
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "UPDATE analytics_sessions") {
				t.Fatalf("unexpected query: %s", query)
			}
			return &fakeResult{rowsAffected: 1}, nil
		},
	}

	repo := NewTrackingRepository(db)

	found, err := repo.IncrementPageViews(context.Background(), "sess_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatalf("expected found=true")
	}
}

func TestTrackingRepository_IncrementPageViews_NotFound(t *testing.T) {
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return &fakeResult{rowsAffected: 0}, nil
		},
	}

	repo := NewTrackingRepository(db)

	found, err := repo.IncrementPageViews(context.Background(), "sess_missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatalf("expected found=false for missing session")
	}
}
