package postgres

import (
	"context"
	"database/sql"

	"site-analytics-service/internal/posts/core/domain"
	"site-analytics-service/internal/posts/core/ports"

	"github.com/lib/pq"
)

type PostRepository struct {
	db DB
}

func NewPostRepository(db DB) *PostRepository {
	return &PostRepository{db: db}
}

var _ ports.PostRepositoryPort = (*PostRepository)(nil)

const insertPostSQL = `
INSERT INTO blog_posts (
    id,
    slug,
    title,
    content,
    excerpt,
    tags,
    published,
    created_at,
    updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, false, $7, $8
)
ON CONFLICT (slug) DO NOTHING`

func (r *PostRepository) InsertPost(ctx context.Context, p *domain.Post) (bool, error) {
	res, err := r.db.ExecContext(ctx, insertPostSQL,
		p.ID,
		p.Slug,
		p.Title,
		p.Content,
		nullable(p.Excerpt),
		pq.Array(p.Tags),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

const updatePostSQL = `
UPDATE blog_posts
SET title      = $2,
    content    = $3,
    excerpt    = $4,
    tags       = $5,
    updated_at = $6
WHERE slug = $1`

func (r *PostRepository) UpdatePost(ctx context.Context, p *domain.Post) (bool, error) {
	res, err := r.db.ExecContext(ctx, updatePostSQL,
		p.Slug,
		p.Title,
		p.Content,
		nullable(p.Excerpt),
		pq.Array(p.Tags),
		p.UpdatedAt,
	)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

const setPublishedSQL = `
UPDATE blog_posts
SET published    = $2,
    published_at = CASE WHEN $2 THEN now() ELSE NULL END,
    updated_at   = now()
WHERE slug = $1`

func (r *PostRepository) SetPublished(ctx context.Context, slug string, published bool) (bool, error) {
	res, err := r.db.ExecContext(ctx, setPublishedSQL, slug, published)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

const selectPostSQL = `
SELECT
    id,
    slug,
    title,
    content,
    excerpt,
    tags,
    published,
    published_at,
    created_at,
    updated_at
FROM blog_posts`

func (r *PostRepository) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, selectPostSQL+"\nWHERE slug = $1", slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	p, err := scanPost(rows)
	if err != nil {
		return nil, err
	}

	return p, rows.Err()
}

func (r *PostRepository) ListPublished(ctx context.Context) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, selectPostSQL+"\nWHERE published\nORDER BY published_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func scanPost(rows RowScanner) (*domain.Post, error) {
	var (
		p           domain.Post
		excerpt     sql.NullString
		published   sql.NullBool
		publishedAt sql.NullTime
	)
	if err := rows.Scan(
		&p.ID,
		&p.Slug,
		&p.Title,
		&p.Content,
		&excerpt,
		pq.Array(&p.Tags),
		&published,
		&publishedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Excerpt = excerpt.String
	p.Published = published.Bool
	if publishedAt.Valid {
		t := publishedAt.Time
		p.PublishedAt = &t
	}

	return &p, nil
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
