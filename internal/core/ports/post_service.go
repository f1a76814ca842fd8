package ports

import (
	"context"

	"github.com/inkpress/blog-api/internal/core/domain"
)

// CreatePostInput carries all data needed to create a post. AuthorID is the
// authenticated identity from the caller's session token, never client input.
type CreatePostInput struct {
	Title     string
	Summary   string
	Content   string
	CoverPath string
	AuthorID  string
}

// UpdatePostInput carries a partial post edit. RequesterID is checked against
// the post's author before anything is written. Empty fields are left
// untouched.
type UpdatePostInput struct {
	ID          string
	RequesterID string
	Title       string
	Summary     string
	Content     string
	CoverPath   string
}

// PostService defines use-case operations for posts. Update and Delete
// enforce the ownership rule: only the original author may mutate a post.
type PostService interface {
	Create(ctx context.Context, in CreatePostInput) (*domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	// ListRecent returns the newest posts (capped at a fixed page size),
	// joined with author usernames.
	ListRecent(ctx context.Context) ([]*domain.Post, error)
	Update(ctx context.Context, in UpdatePostInput) (*domain.Post, error)
	Delete(ctx context.Context, id, requesterID string) error
}
