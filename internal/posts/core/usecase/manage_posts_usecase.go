package usecase

import (
	"context"
	"errors"
	"regexp"
	"time"

	"site-analytics-service/internal/posts/core/domain"
	"site-analytics-service/internal/posts/core/ports"

	"github.com/google/uuid"
)

var (
	ErrInvalidPost  = errors.New("invalid post")
	ErrInvalidSlug  = errors.New("invalid slug")
	ErrSlugTaken    = errors.New("slug already taken")
	ErrPostNotFound = errors.New("post not found")
)

// Slugs are kebab-case: the instrumentation references posts by the same value.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type ManagePostsUseCase struct {
	repo ports.PostRepositoryPort
}

func NewManagePostsUseCase(repo ports.PostRepositoryPort) *ManagePostsUseCase {
	return &ManagePostsUseCase{repo: repo}
}

type SavePostInput struct {
	Slug    string
	Title   string
	Content string
	Excerpt string
	Tags    []string
}

func (in SavePostInput) validate() error {
	if in.Title == "" || in.Content == "" {
		return ErrInvalidPost
	}
	if !slugPattern.MatchString(in.Slug) {
		return ErrInvalidSlug
	}
	return nil
}

// CreatePost stores a draft. The slug is the stable reference key and must be
// unique.
func (uc *ManagePostsUseCase) CreatePost(ctx context.Context, in SavePostInput) (string, error) {
	if err := in.validate(); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	p := &domain.Post{
		ID:        uuid.NewString(),
		Slug:      in.Slug,
		Title:     in.Title,
		Content:   in.Content,
		Excerpt:   in.Excerpt,
		Tags:      in.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}

	created, err := uc.repo.InsertPost(ctx, p)
	if err != nil {
		return "", err
	}
	if !created {
		return "", ErrSlugTaken
	}

	return p.ID, nil
}

func (uc *ManagePostsUseCase) UpdatePost(ctx context.Context, in SavePostInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	p := &domain.Post{
		Slug:      in.Slug,
		Title:     in.Title,
		Content:   in.Content,
		Excerpt:   in.Excerpt,
		Tags:      in.Tags,
		UpdatedAt: time.Now().UTC(),
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}

	found, err := uc.repo.UpdatePost(ctx, p)
	if err != nil {
		return err
	}
	if !found {
		return ErrPostNotFound
	}

	return nil
}

func (uc *ManagePostsUseCase) PublishPost(ctx context.Context, slug string, published bool) error {
	if !slugPattern.MatchString(slug) {
		return ErrInvalidSlug
	}

	found, err := uc.repo.SetPublished(ctx, slug, published)
	if err != nil {
		return err
	}
	if !found {
		return ErrPostNotFound
	}

	return nil
}

func (uc *ManagePostsUseCase) GetPost(ctx context.Context, slug string) (*domain.Post, error) {
	if !slugPattern.MatchString(slug) {
		return nil, ErrInvalidSlug
	}

	p, err := uc.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}

	return p, nil
}

func (uc *ManagePostsUseCase) ListPublished(ctx context.Context) ([]domain.Post, error) {
	return uc.repo.ListPublished(ctx)
}
