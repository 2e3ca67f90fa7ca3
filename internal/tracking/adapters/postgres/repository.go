package postgres

import (
	"context"
	"encoding/json"

	"site-analytics-service/internal/tracking/core/domain"
	"site-analytics-service/internal/tracking/core/ports"
)

type TrackingRepository struct {
	db DB
}

func NewTrackingRepository(db DB) *TrackingRepository {
	return &TrackingRepository{db: db}
}

var _ ports.TrackingRepositoryPort = (*TrackingRepository)(nil)

const insertEventSQL = `
INSERT INTO analytics_events (
    id,
    event_name,
    session_id,
    user_id,
    occurred_at,
    props
) VALUES (
    $1, $2, $3, $4, $5, $6
)`

func (r *TrackingRepository) InsertEvent(ctx context.Context, e *domain.Event) error {
	var userID any
	if e.UserID != "" {
		userID = e.UserID
	}

	propsJSON, err := json.Marshal(e.Props)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, insertEventSQL,
		e.ID,
		e.EventName,
		e.SessionID,
		userID,
		e.OccurredAt,
		propsJSON,
	)
	return err
}

const upsertSessionSQL = `
INSERT INTO analytics_sessions (
    id,
    user_id,
    started_at,
    device_type,
    utm_source,
    utm_medium,
    utm_campaign,
    utm_content,
    utm_term,
    landing_page,
    referrer,
    country,
    is_returning,
    page_views
) VALUES (
    $1, $2, $3, $4, $5, $6, $7,
    $8, $9, $10, $11, $12, $13, 1
)
ON CONFLICT (id) DO UPDATE SET
    user_id      = COALESCE(EXCLUDED.user_id, analytics_sessions.user_id),
    device_type  = EXCLUDED.device_type,
    is_returning = EXCLUDED.is_returning,
    updated_at   = now()`

func (r *TrackingRepository) UpsertSession(ctx context.Context, s *domain.Session) error {
	_, err := r.db.ExecContext(ctx, upsertSessionSQL,
		s.ID,
		nullable(s.UserID),
		s.StartedAt,
		nullable(s.DeviceType),
		nullable(s.UTMSource),
		nullable(s.UTMMedium),
		nullable(s.UTMCampaign),
		nullable(s.UTMContent),
		nullable(s.UTMTerm),
		nullable(s.LandingPage),
		nullable(s.Referrer),
		nullable(s.Country),
		s.IsReturning,
	)
	return err
}

const incrementPageViewsSQL = `
UPDATE analytics_sessions
SET page_views = COALESCE(page_views, 0) + 1,
    updated_at = now()
WHERE id = $1`

func (r *TrackingRepository) IncrementPageViews(ctx context.Context, sessionID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, incrementPageViewsSQL, sessionID)
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
