package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/inkpress/blog-api/internal/core/domain"
	"github.com/inkpress/blog-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	// Mirrors the unique indexes on the real collection.
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	r.nextID++
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateByID(_ context.Context, id string, upd ports.UserUpdate) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if upd.Username != "" {
		u.Username = upd.Username
	}
	if upd.Email != "" {
		u.Email = upd.Email
	}
	if upd.PasswordHash != "" {
		u.PasswordHash = upd.PasswordHash
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubUserRepo) DeleteByID(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func newTestAuthService() (*AuthService, *stubUserRepo) {
	repo := newStubUserRepo()
	tokens := NewTokenService("secret", time.Hour)
	return NewAuthService(repo, tokens), repo
}

// ---------------------------------------------------------------------------
// Signup
// ---------------------------------------------------------------------------

func TestAuthService_Signup_Success(t *testing.T) {
	svc, _ := newTestAuthService()

	user, err := svc.Signup(context.Background(), "alice1", "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if user.PasswordHash == "secret1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Signup_MissingFields(t *testing.T) {
	svc, _ := newTestAuthService()

	cases := [][3]string{
		{"", "a@x.com", "pass"},
		{"alice1", "", "pass"},
		{"alice1", "a@x.com", ""},
	}
	for _, tc := range cases {
		if _, err := svc.Signup(context.Background(), tc[0], tc[1], tc[2]); err != domain.ErrMissingFields {
			t.Fatalf("signup(%q,%q,%q): expected ErrMissingFields, got %v", tc[0], tc[1], tc[2], err)
		}
	}
}

func TestAuthService_Signup_EmailTaken(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, err := svc.Signup(context.Background(), "alice1", "a@x.com", "pass"); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.Signup(context.Background(), "other", "a@x.com", "pass"); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Signup_UsernameTaken(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, err := svc.Signup(context.Background(), "alice1", "a@x.com", "pass"); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.Signup(context.Background(), "alice1", "b@x.com", "pass"); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_Signup_NoDuplicateRecord(t *testing.T) {
	svc, repo := newTestAuthService()

	_, _ = svc.Signup(context.Background(), "alice1", "a@x.com", "pass")
	_, _ = svc.Signup(context.Background(), "alice1", "a@x.com", "pass2")

	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(repo.users))
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	svc, _ := newTestAuthService()
	tokens := NewTokenService("secret", time.Hour)

	created, err := svc.Signup(context.Background(), "carol1", "carol@x.com", "s3cret")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user == nil || user.Username != "carol1" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token did not verify: %v", err)
	}
	if claims.UserID != created.ID || claims.Email != "carol@x.com" || claims.Username != "carol1" {
		t.Fatalf("claims do not match stored identity: %+v", claims)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, _, err := svc.Login(context.Background(), "", "pass"); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@x.com", ""); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, _, err := svc.Login(context.Background(), "ghost@x.com", "pass"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _ = svc.Signup(context.Background(), "dave1", "dave@x.com", "goodpass")
	if _, _, err := svc.Login(context.Background(), "dave@x.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Profile
// ---------------------------------------------------------------------------

func TestAuthService_UpdateProfile_RehashesPassword(t *testing.T) {
	svc, repo := newTestAuthService()

	created, _ := svc.Signup(context.Background(), "erin1", "erin@x.com", "oldpass")
	oldHash := repo.users[created.ID].PasswordHash

	updated, err := svc.UpdateProfile(context.Background(), created.ID, ports.UpdateProfileInput{
		Username: "erin2",
		Email:    "erin2@x.com",
		Password: "newpass",
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.Username != "erin2" || updated.Email != "erin2@x.com" {
		t.Fatalf("unexpected profile: %+v", updated)
	}

	newHash := repo.users[created.ID].PasswordHash
	if newHash == oldHash {
		t.Fatalf("expected password hash to change")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(newHash), []byte("newpass")); err != nil {
		t.Fatalf("new hash does not match new password: %v", err)
	}
}

func TestAuthService_UpdateProfile_KeepsPassword(t *testing.T) {
	svc, repo := newTestAuthService()

	created, _ := svc.Signup(context.Background(), "frank1", "frank@x.com", "pass")
	oldHash := repo.users[created.ID].PasswordHash

	if _, err := svc.UpdateProfile(context.Background(), created.ID, ports.UpdateProfileInput{
		Username: "frank2",
		Email:    "frank@x.com",
	}); err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}

	if repo.users[created.ID].PasswordHash != oldHash {
		t.Fatalf("password hash changed without a new password")
	}
}

func TestAuthService_UpdateProfile_RequiresUsernameAndEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	created, _ := svc.Signup(context.Background(), "gina1", "gina@x.com", "pass")

	if _, err := svc.UpdateProfile(context.Background(), created.ID, ports.UpdateProfileInput{Email: "g@x.com"}); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, err := svc.UpdateProfile(context.Background(), created.ID, ports.UpdateProfileInput{Username: "gina2"}); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestAuthService_DeleteProfile(t *testing.T) {
	svc, repo := newTestAuthService()
	created, _ := svc.Signup(context.Background(), "hank1", "hank@x.com", "pass")

	if err := svc.DeleteProfile(context.Background(), created.ID); err != nil {
		t.Fatalf("DeleteProfile returned error: %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("expected record to be deleted")
	}
	if err := svc.DeleteProfile(context.Background(), created.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound on repeat delete, got %v", err)
	}
}
