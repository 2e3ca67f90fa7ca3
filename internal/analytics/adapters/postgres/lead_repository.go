package postgres

import (
	"context"
	"database/sql"

	"site-analytics-service/internal/analytics/core/domain"
	"site-analytics-service/internal/analytics/core/ports"
	"site-analytics-service/internal/analytics/core/timerange"
)

type LeadRepository struct {
	db DB
}

func NewLeadRepository(db DB) *LeadRepository {
	return &LeadRepository{db: db}
}

var _ ports.LeadReaderPort = (*LeadRepository)(nil)

const listLeadsSQL = `
SELECT
    id,
    created_at,
    closed_at,
    status,
    source,
    medium,
    campaign,
    service_interest,
    deal_value,
    reply_time_minutes,
    session_id
FROM leads
WHERE created_at BETWEEN $1 AND $2
ORDER BY created_at`

func (r *LeadRepository) ListLeads(ctx context.Context, window timerange.Range) ([]domain.LeadRecord, error) {
	rows, err := r.db.QueryContext(ctx, listLeadsSQL, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []domain.LeadRecord
	for rows.Next() {
		var (
			l         domain.LeadRecord
			closedAt  sql.NullTime
			status    sql.NullString
			source    sql.NullString
			medium    sql.NullString
			campaign  sql.NullString
			service   sql.NullString
			dealValue sql.NullFloat64
			replyTime sql.NullFloat64
			sessionID sql.NullString
		)
		if err := rows.Scan(
			&l.ID,
			&l.CreatedAt,
			&closedAt,
			&status,
			&source,
			&medium,
			&campaign,
			&service,
			&dealValue,
			&replyTime,
			&sessionID,
		); err != nil {
			return nil, err
		}

		if closedAt.Valid {
			t := closedAt.Time
			l.ClosedAt = &t
		}
		l.Status = status.String
		l.Source = nullableString(source)
		l.Medium = nullableString(medium)
		l.Campaign = nullableString(campaign)
		l.ServiceInterest = nullableString(service)
		if dealValue.Valid {
			v := dealValue.Float64
			l.DealValue = &v
		}
		if replyTime.Valid {
			v := replyTime.Float64
			l.ReplyTimeMinutes = &v
		}
		l.SessionID = nullableString(sessionID)

		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return leads, nil
}
