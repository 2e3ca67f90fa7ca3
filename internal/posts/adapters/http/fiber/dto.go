package fiber

import "time"

// SavePostRequest creates or updates a blog post.
// @Description Post creation/update DTO
type SavePostRequest struct {
	Slug    string   `json:"slug"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Excerpt string   `json:"excerpt"`
	Tags    []string `json:"tags"`
}

type CreatePostResponse struct {
	PostID string `json:"post_id"`
	Slug   string `json:"slug"`
}

type PublishPostRequest struct {
	Published bool `json:"published"`
}

type PostResponse struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Content     string     `json:"content,omitempty"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Tags        []string   `json:"tags"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_post"`
	Message string `json:"message,omitempty" example:"post payload is invalid"`
}
