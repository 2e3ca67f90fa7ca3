// Package domain holds the blog post model.
package domain

import "time"

type Post struct {
	ID          string
	Slug        string
	Title       string
	Content     string
	Excerpt     string
	Tags        []string
	Published   bool
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
