package ports

import (
	"context"

	"github.com/inkpress/blog-api/internal/core/domain"
)

// UserUpdate carries the mutable profile fields. Empty strings mean
// "leave untouched" (partial update, not replace).
type UserUpdate struct {
	Username     string
	Email        string
	PasswordHash string
}

// UserRepository defines persistence for user accounts. Uniqueness of email
// and username is enforced by the store through unique indexes; Create maps
// the resulting conflict to domain.ErrEmailTaken / domain.ErrUsernameTaken,
// which is the authoritative signal (the service's existence checks before
// insert are best-effort and inherently racy).
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateByID(ctx context.Context, id string, upd UserUpdate) error
	DeleteByID(ctx context.Context, id string) error
}
