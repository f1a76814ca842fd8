package ports

import (
	"context"

	"github.com/inkpress/blog-api/internal/core/domain"
)

// UpdateProfileInput carries the profile edit fields. Username and Email are
// required; Password is optional and rehashed when provided.
type UpdateProfileInput struct {
	Username string
	Email    string
	Password string
}

type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (*domain.User, error)
	// Login returns a signed session token alongside the user on success.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	GetProfile(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*domain.User, error)
	DeleteProfile(ctx context.Context, id string) error
}
