package ports

import (
	"context"

	"site-analytics-service/internal/posts/core/domain"
)

type PostRepositoryPort interface {
	// InsertPost:
	//   created = true,  err = nil -> new record
	//   created = false, err = nil -> slug already taken
	InsertPost(ctx context.Context, p *domain.Post) (created bool, err error)

	UpdatePost(ctx context.Context, p *domain.Post) (found bool, err error)

	// SetPublished flips the publication flag, stamping published_at on publish.
	SetPublished(ctx context.Context, slug string, published bool) (found bool, err error)

	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)

	// ListPublished returns published posts, newest first.
	ListPublished(ctx context.Context) ([]domain.Post, error)
}
