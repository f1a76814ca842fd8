package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/inkpress/blog-api/internal/api/middleware"
	"github.com/inkpress/blog-api/internal/core/domain"
	"github.com/inkpress/blog-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub auth service
// ---------------------------------------------------------------------------

type stubAuthService struct {
	signupUser *domain.User
	signupErr  error
	loginToken string
	loginUser  *domain.User
	loginErr   error
	profile    *domain.User
	profileErr error
	updateErr  error
	deleteErr  error
	deletedID  string
}

func (s *stubAuthService) Signup(_ context.Context, username, email, password string) (*domain.User, error) {
	if s.signupErr != nil {
		return nil, s.signupErr
	}
	return s.signupUser, nil
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.loginToken, s.loginUser, nil
}

func (s *stubAuthService) GetProfile(_ context.Context, id string) (*domain.User, error) {
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	return s.profile, nil
}

func (s *stubAuthService) UpdateProfile(_ context.Context, id string, in ports.UpdateProfileInput) (*domain.User, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.profile, nil
}

func (s *stubAuthService) DeleteProfile(_ context.Context, id string) error {
	s.deletedID = id
	return s.deleteErr
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// ---------------------------------------------------------------------------
// Signup
// ---------------------------------------------------------------------------

func TestAuthHandler_Signup_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{signupUser: &domain.User{
		ID:           "u1",
		Username:     "alice1",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$hash",
	}})

	c, rec := newJSONContext(http.MethodPost, "/signup", `{"username":"alice1","email":"a@x.com","password":"pass"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `"username":"alice1"`) || !strings.Contains(body, `"email":"a@x.com"`) {
		t.Fatalf("unexpected body: %s", body)
	}
	if strings.Contains(body, "hash") || strings.Contains(body, "password") {
		t.Fatalf("response must not leak credentials: %s", body)
	}
}

func TestAuthHandler_Signup_InvalidJSON(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(http.MethodPost, "/signup", `{broken`)
	err := h.Signup(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %v", err)
	}
}

func TestAuthHandler_Signup_ValidationFailure(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	// Username below the 4 character minimum.
	c, _ := newJSONContext(http.MethodPost, "/signup", `{"username":"al","email":"a@x.com","password":"pass"}`)
	err := h.Signup(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short username, got %v", err)
	}
}

func TestAuthHandler_Signup_ServiceErrorPassthrough(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{signupErr: domain.ErrEmailTaken})

	c, _ := newJSONContext(http.MethodPost, "/signup", `{"username":"alice1","email":"a@x.com","password":"pass"}`)
	if err := h.Signup(c); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken to reach the error handler, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginToken: "signed.jwt.token",
		loginUser:  &domain.User{ID: "u1", Username: "alice1", Email: "a@x.com"},
	})

	c, rec := newJSONContext(http.MethodPost, "/login", `{"email":"a@x.com","password":"pass"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var session *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			session = ck
		}
	}
	if session == nil {
		t.Fatalf("session cookie not set")
	}
	if session.Value != "signed.jwt.token" {
		t.Fatalf("unexpected cookie value: %q", session.Value)
	}
	if !session.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
	if session.SameSite != http.SameSiteStrictMode {
		t.Fatalf("session cookie must be SameSite=Strict")
	}
	if session.Path != "/" {
		t.Fatalf("session cookie path must be /, got %q", session.Path)
	}

	if !strings.Contains(rec.Body.String(), `"id":"u1"`) {
		t.Fatalf("login response must include the user id: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_ErrorPassthrough(t *testing.T) {
	for _, sentinel := range []error{domain.ErrUserNotFound, domain.ErrInvalidCredentials} {
		h := NewAuthHandler(&stubAuthService{loginErr: sentinel})

		c, rec := newJSONContext(http.MethodPost, "/login", `{"email":"a@x.com","password":"pass"}`)
		if err := h.Login(c); err != sentinel {
			t.Fatalf("expected %v to reach the error handler, got %v", sentinel, err)
		}
		if len(rec.Result().Cookies()) != 0 {
			t.Fatalf("no cookie may be set on a failed login")
		}
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(http.MethodPost, "/login", `{"email":"a@x.com"}`)
	err := h.Login(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Me / Logout
// ---------------------------------------------------------------------------

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newJSONContext(http.MethodGet, "/profile", "")
	c.Set("user_id", "u1")
	c.Set("email", "a@x.com")
	c.Set("username", "alice1")

	if err := h.Me(c); err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"id":"u1"`) || !strings.Contains(body, `"username":"alice1"`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestAuthHandler_Me_MissingClaims(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(http.MethodGet, "/profile", "")
	err := h.Me(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %v", err)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newJSONContext(http.MethodPost, "/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var session *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			session = ck
		}
	}
	if session == nil {
		t.Fatalf("expected an expiring session cookie")
	}
	if session.Value != "" || session.MaxAge >= 0 {
		t.Fatalf("cookie must be cleared: value=%q maxAge=%d", session.Value, session.MaxAge)
	}
}
