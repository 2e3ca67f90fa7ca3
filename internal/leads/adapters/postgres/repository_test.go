package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"site-analytics-service/internal/leads/core/domain"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakeResult struct {
	rowsAffected int64
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rowsAffected, nil }

type fakeDB struct {
	lastQuery    string
	lastArgs     []any
	execErr      error
	rowsAffected int64
}

func (f *fakeDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.lastQuery = query
	f.lastArgs = args
	if f.execErr != nil {
		return nil, f.execErr
	}
	return fakeResult{rowsAffected: f.rowsAffected}, nil
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestInsertLead(t *testing.T) {
	db := &fakeDB{rowsAffected: 1}
	repo := NewLeadRepository(db)

	lead := &domain.Lead{
		ID:              "lead_1",
		CreatedAt:       time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
		Status:          "new",
		Source:          "google",
		ServiceInterest: "seo",
		Email:           "lead@example.com",
	}

	if err := repo.InsertLead(context.Background(), lead); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(db.lastQuery, "INSERT INTO leads") {
		t.Errorf("unexpected query: %s", db.lastQuery)
	}
	if len(db.lastArgs) != 11 {
		t.Fatalf("expected 11 args, got %d", len(db.lastArgs))
	}
	if db.lastArgs[3] != "google" {
		t.Errorf("expected source arg, got %v", db.lastArgs[3])
	}
	// Empty optional fields go in as NULL, not empty strings.
	if db.lastArgs[4] != nil {
		t.Errorf("expected nil medium, got %v", db.lastArgs[4])
	}
	if db.lastArgs[9] != nil {
		t.Errorf("expected nil phone, got %v", db.lastArgs[9])
	}
}

func TestInsertLead_Error(t *testing.T) {
	db := &fakeDB{execErr: errors.New("connection refused")}
	repo := NewLeadRepository(db)

	err := repo.InsertLead(context.Background(), &domain.Lead{ID: "lead_1"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestUpdateStatus_SetsClosedAt(t *testing.T) {
	db := &fakeDB{rowsAffected: 1}
	repo := NewLeadRepository(db)

	closedAt := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	found, err := repo.UpdateStatus(context.Background(), "lead_1", "won", &closedAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected found=true")
	}

	if !strings.Contains(db.lastQuery, "closed_at") {
		t.Errorf("expected closed_at in query: %s", db.lastQuery)
	}
	if len(db.lastArgs) != 3 {
		t.Fatalf("expected 3 args, got %d", len(db.lastArgs))
	}
	if db.lastArgs[1] != "won" {
		t.Errorf("expected status arg, got %v", db.lastArgs[1])
	}
	got, ok := db.lastArgs[2].(*time.Time)
	if !ok || got == nil || !got.Equal(closedAt) {
		t.Errorf("expected closedAt arg, got %v", db.lastArgs[2])
	}
}

func TestUpdateStatus_ClearsClosedAtOnReopen(t *testing.T) {
	db := &fakeDB{rowsAffected: 1}
	repo := NewLeadRepository(db)

	if _, err := repo.UpdateStatus(context.Background(), "lead_1", "qualified", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := db.lastArgs[2].(*time.Time)
	if !ok || got != nil {
		t.Errorf("expected nil closedAt arg, got %v", db.lastArgs[2])
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	db := &fakeDB{rowsAffected: 0}
	repo := NewLeadRepository(db)

	found, err := repo.UpdateStatus(context.Background(), "missing", "won", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected found=false for zero rows affected")
	}
}

func TestSetReplyTime(t *testing.T) {
	db := &fakeDB{rowsAffected: 1}
	repo := NewLeadRepository(db)

	found, err := repo.SetReplyTime(context.Background(), "lead_1", 12.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected found=true")
	}

	if !strings.Contains(db.lastQuery, "reply_time_minutes") {
		t.Errorf("unexpected query: %s", db.lastQuery)
	}
	if db.lastArgs[1] != 12.5 {
		t.Errorf("expected minutes arg, got %v", db.lastArgs[1])
	}
}
