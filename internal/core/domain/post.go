package domain

import (
	"errors"
	"time"
)

var ErrPostNotFound = errors.New("post not found")
var ErrForbidden = errors.New("access forbidden")

// Post is the core aggregate root. Content is stored as markup exactly as
// submitted; CoverPath references the uploaded image on disk.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	CoverPath string    `json:"cover"`
	// AuthorID is bound to the creator's session identity at creation time and
	// immutable afterwards. Deleting a user does not cascade to posts, so the
	// reference may dangle; readers must tolerate an empty AuthorName.
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsOwnedBy reports whether userID may mutate or delete the post. Ownership
// equality is the sole authorization rule; there is no role hierarchy.
func (p *Post) IsOwnedBy(userID string) bool {
	return userID != "" && p.AuthorID == userID
}
