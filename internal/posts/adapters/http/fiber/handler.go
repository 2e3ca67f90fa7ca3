package fiber

import (
	"context"
	"errors"
	"net/http"

	"site-analytics-service/internal/posts/core/domain"
	"site-analytics-service/internal/posts/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type ManagePostsUseCase interface {
	CreatePost(ctx context.Context, in usecase.SavePostInput) (string, error)
	UpdatePost(ctx context.Context, in usecase.SavePostInput) error
	PublishPost(ctx context.Context, slug string, published bool) error
	GetPost(ctx context.Context, slug string) (*domain.Post, error)
	ListPublished(ctx context.Context) ([]domain.Post, error)
}

type PostHandler struct {
	postsUC ManagePostsUseCase
}

func NewPostHandler(postsUC ManagePostsUseCase) *PostHandler {
	return &PostHandler{postsUC: postsUC}
}

// CreatePost godoc
// @Summary Create a post
// @Description Stores a draft post under a unique slug
// @Tags Posts
// @Accept json
// @Produce json
// @Param request body SavePostRequest true "Post payload"
// @Success 201 {object} CreatePostResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /posts [post]
func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var req SavePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	postID, err := h.postsUC.CreatePost(c.UserContext(), usecase.SavePostInput{
		Slug:    req.Slug,
		Title:   req.Title,
		Content: req.Content,
		Excerpt: req.Excerpt,
		Tags:    req.Tags,
	})
	if err != nil {
		return postError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(CreatePostResponse{
		PostID: postID,
		Slug:   req.Slug,
	})
}

// UpdatePost godoc
// @Summary Update a post
// @Description Replaces the content of an existing post
// @Tags Posts
// @Accept json
// @Produce json
// @Param slug path string true "Post slug"
// @Param request body SavePostRequest true "Post payload"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /posts/{slug} [put]
func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	var req SavePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	err := h.postsUC.UpdatePost(c.UserContext(), usecase.SavePostInput{
		Slug:    c.Params("slug"),
		Title:   req.Title,
		Content: req.Content,
		Excerpt: req.Excerpt,
		Tags:    req.Tags,
	})
	if err != nil {
		return postError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}

// PublishPost godoc
// @Summary Publish or unpublish a post
// @Tags Posts
// @Accept json
// @Produce json
// @Param slug path string true "Post slug"
// @Param request body PublishPostRequest true "Publication flag"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /posts/{slug}/publish [post]
func (h *PostHandler) PublishPost(c *fiber.Ctx) error {
	var req PublishPostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	if err := h.postsUC.PublishPost(c.UserContext(), c.Params("slug"), req.Published); err != nil {
		return postError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}

// GetPost godoc
// @Summary Fetch a post by slug
// @Tags Posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} PostResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /posts/{slug} [get]
func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	p, err := h.postsUC.GetPost(c.UserContext(), c.Params("slug"))
	if err != nil {
		return postError(c, err)
	}

	return c.JSON(toPostResponse(p))
}

// ListPosts godoc
// @Summary List published posts
// @Tags Posts
// @Produce json
// @Success 200 {array} PostResponse
// @Failure 500 {object} ErrorResponse
// @Router /posts [get]
func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	posts, err := h.postsUC.ListPublished(c.UserContext())
	if err != nil {
		return postError(c, err)
	}

	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, toPostResponse(&posts[i]))
	}
	return c.JSON(out)
}

func toPostResponse(p *domain.Post) PostResponse {
	return PostResponse{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Content:     p.Content,
		Excerpt:     p.Excerpt,
		Tags:        p.Tags,
		Published:   p.Published,
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func postError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrPostNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error: "post_not_found",
		})
	case errors.Is(err, usecase.ErrSlugTaken):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Error: "slug_taken",
		})
	case errors.Is(err, usecase.ErrInvalidPost), errors.Is(err, usecase.ErrInvalidSlug):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_post",
			Message: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
