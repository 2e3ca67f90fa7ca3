package postgres

import (
	"context"
	"time"

	"site-analytics-service/internal/leads/core/domain"
	"site-analytics-service/internal/leads/core/ports"
)

type LeadRepository struct {
	db DB
}

func NewLeadRepository(db DB) *LeadRepository {
	return &LeadRepository{db: db}
}

var _ ports.LeadRepositoryPort = (*LeadRepository)(nil)

const insertLeadSQL = `
INSERT INTO leads (
    id,
    created_at,
    status,
    source,
    medium,
    campaign,
    service_interest,
    session_id,
    click_id,
    phone,
    email
) VALUES (
    $1, $2, $3, $4, $5, $6,
    $7, $8, $9, $10, $11
)`

func (r *LeadRepository) InsertLead(ctx context.Context, l *domain.Lead) error {
	_, err := r.db.ExecContext(ctx, insertLeadSQL,
		l.ID,
		l.CreatedAt,
		l.Status,
		nullable(l.Source),
		nullable(l.Medium),
		nullable(l.Campaign),
		nullable(l.ServiceInterest),
		nullable(l.SessionID),
		nullable(l.ClickID),
		nullable(l.Phone),
		nullable(l.Email),
	)
	return err
}

const updateStatusSQL = `
UPDATE leads
SET status     = $2,
    closed_at  = $3,
    updated_at = now()
WHERE id = $1`

func (r *LeadRepository) UpdateStatus(ctx context.Context, id, status string, closedAt *time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, updateStatusSQL, id, status, closedAt)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

const setReplyTimeSQL = `
UPDATE leads
SET reply_time_minutes = $2,
    updated_at         = now()
WHERE id = $1`

func (r *LeadRepository) SetReplyTime(ctx context.Context, id string, minutes float64) (bool, error) {
	res, err := r.db.ExecContext(ctx, setReplyTimeSQL, id, minutes)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
