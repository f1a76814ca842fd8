package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/inkpress/blog-api/internal/core/domain"
	"github.com/inkpress/blog-api/internal/core/ports"
)

// AuthService implements registration, login, and profile management.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenService
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Signup registers a new account. The flow is strictly linear: field check,
// email existence check, username existence check, hash, persist. The two
// existence checks give callers precise conflict messages but are not atomic
// with the insert; the repository's unique indexes close that race and report
// the same domain errors.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("signup: check email: %w", err)
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("signup: check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("signup: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login verifies credentials and issues a session token. An unknown email and
// a wrong password are distinct failures so the transport layer can return
// 404 vs 401.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrMissingFields
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ports.Claims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
	})
	if err != nil {
		return "", nil, fmt.Errorf("login: issue token: %w", err)
	}

	return token, user, nil
}

func (s *AuthService) GetProfile(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile edits username/email and optionally rehashes the password.
// Username and email are both required on every edit.
func (s *AuthService) UpdateProfile(ctx context.Context, id string, in ports.UpdateProfileInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" {
		return nil, domain.ErrMissingFields
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	upd := ports.UserUpdate{Username: in.Username, Email: in.Email}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("update profile: hash password: %w", err)
		}
		upd.PasswordHash = string(hash)
	}

	if err := s.repo.UpdateByID(ctx, id, upd); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

// DeleteProfile removes the account immediately. Posts authored by the user
// are left in place with a dangling author reference.
func (s *AuthService) DeleteProfile(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteByID(ctx, id)
}
