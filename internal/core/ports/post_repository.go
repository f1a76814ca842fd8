package ports

import (
	"context"

	"github.com/inkpress/blog-api/internal/core/domain"
)

// PostUpdate carries the mutable post fields. Empty strings mean
// "leave untouched". AuthorID is immutable and deliberately absent.
type PostUpdate struct {
	Title     string
	Summary   string
	Content   string
	CoverPath string
}

// PostRepository defines persistence for posts.
type PostRepository interface {
	// FindByID retrieves a single post without the author join.
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// FindRecent returns up to limit posts ordered by creation time descending,
	// each joined with its author's username. Posts whose author has been
	// deleted are returned with an empty AuthorName.
	FindRecent(ctx context.Context, limit int) ([]*domain.Post, error)
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	UpdateByID(ctx context.Context, id string, upd PostUpdate) error
	DeleteByID(ctx context.Context, id string) error
}
