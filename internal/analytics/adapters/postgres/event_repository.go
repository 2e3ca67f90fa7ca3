package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"site-analytics-service/internal/analytics/core/domain"
	"site-analytics-service/internal/analytics/core/ports"

	"github.com/lib/pq"
)

type EventRepository struct {
	db DB
}

func NewEventRepository(db DB) *EventRepository {
	return &EventRepository{db: db}
}

var _ ports.EventReaderPort = (*EventRepository)(nil)

const listEventsSQL = `
SELECT
    id,
    event_name,
    session_id,
    user_id,
    occurred_at,
    props
FROM analytics_events
WHERE occurred_at BETWEEN $1 AND $2`

func (r *EventRepository) ListEvents(ctx context.Context, f ports.EventFilter) ([]domain.EventRecord, error) {
	query := listEventsSQL
	args := []any{f.Range.Start, f.Range.End}
	if len(f.Names) > 0 {
		query += " AND event_name = ANY($3)"
		args = append(args, pq.Array(f.Names))
	}
	query += "\nORDER BY occurred_at"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.EventRecord
	for rows.Next() {
		var (
			e      domain.EventRecord
			userID sql.NullString
			props  []byte
		)
		if err := rows.Scan(&e.ID, &e.EventName, &e.SessionID, &userID, &e.OccurredAt, &props); err != nil {
			return nil, err
		}
		e.UserID = nullableString(userID)

		// A row with an unreadable props blob still counts as an event; the
		// accessors on an empty bag return their defaults.
		if len(props) > 0 {
			if err := json.Unmarshal(props, &e.Props); err != nil {
				e.Props = domain.Props{}
			}
		}

		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
