package postgres

import (
	"context"

	"site-analytics-service/internal/analytics/core/ports"

	"github.com/lib/pq"
)

type PostRepository struct {
	db DB
}

func NewPostRepository(db DB) *PostRepository {
	return &PostRepository{db: db}
}

var _ ports.PostReaderPort = (*PostRepository)(nil)

const titlesBySlugSQL = `
SELECT slug, title
FROM blog_posts
WHERE slug = ANY($1)`

func (r *PostRepository) TitlesBySlug(ctx context.Context, slugs []string) (map[string]string, error) {
	titles := map[string]string{}
	if len(slugs) == 0 {
		return titles, nil
	}

	rows, err := r.db.QueryContext(ctx, titlesBySlugSQL, pq.Array(slugs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var slug, title string
		if err := rows.Scan(&slug, &title); err != nil {
			return nil, err
		}
		titles[slug] = title
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return titles, nil
}
