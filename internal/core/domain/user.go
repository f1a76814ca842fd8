package domain

import (
	"errors"
	"time"
)

var ErrMissingFields = errors.New("all fields are required")
var ErrEmailTaken = errors.New("email already exists")
var ErrUsernameTaken = errors.New("username already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid email or password")

// Session token errors. Sessions are stateless: validity is decided purely by
// signature and expiry at verification time, so these are the only two
// failure modes.
var ErrInvalidToken = errors.New("invalid token")
var ErrTokenExpired = errors.New("token expired")

// User models a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
