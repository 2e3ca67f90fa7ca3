package postgres

import (
	"context"
	"database/sql"

	"site-analytics-service/internal/analytics/core/domain"
	"site-analytics-service/internal/analytics/core/ports"
	"site-analytics-service/internal/analytics/core/timerange"
)

type SessionRepository struct {
	db DB
}

func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{db: db}
}

var _ ports.SessionReaderPort = (*SessionRepository)(nil)

const listSessionsSQL = `
SELECT
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
FROM analytics_sessions
WHERE started_at BETWEEN $1 AND $2
ORDER BY started_at`

func (r *SessionRepository) ListSessions(ctx context.Context, window timerange.Range) ([]domain.SessionRecord, error) {
	rows, err := r.db.QueryContext(ctx, listSessionsSQL, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.SessionRecord
	for rows.Next() {
		var (
			s           domain.SessionRecord
			userID      sql.NullString
			deviceType  sql.NullString
			utmSource   sql.NullString
			utmMedium   sql.NullString
			utmCampaign sql.NullString
			utmContent  sql.NullString
			utmTerm     sql.NullString
			landingPage sql.NullString
			referrer    sql.NullString
			country     sql.NullString
			isReturning sql.NullBool
			pageViews   sql.NullInt64
		)
		if err := rows.Scan(
			&s.ID,
			&userID,
			&s.StartedAt,
			&deviceType,
			&utmSource,
			&utmMedium,
			&utmCampaign,
			&utmContent,
			&utmTerm,
			&landingPage,
			&referrer,
			&country,
			&isReturning,
			&pageViews,
		); err != nil {
			return nil, err
		}

		s.UserID = nullableString(userID)
		s.DeviceType = deviceType.String
		s.UTMSource = nullableString(utmSource)
		s.UTMMedium = nullableString(utmMedium)
		s.UTMCampaign = nullableString(utmCampaign)
		s.UTMContent = nullableString(utmContent)
		s.UTMTerm = nullableString(utmTerm)
		s.LandingPage = nullableString(landingPage)
		s.Referrer = nullableString(referrer)
		s.Country = nullableString(country)
		s.IsReturning = isReturning.Bool
		s.PageViews = int(pageViews.Int64)

		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}
