package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkpress/blog-api/internal/core/domain"
	"github.com/inkpress/blog-api/internal/core/ports"
)

// TokenService issues and verifies HS256-signed session tokens. The signing
// secret is process-wide configuration handed in at construction; there is no
// rotation.
type TokenService struct {
	secret   []byte
	tokenTTL time.Duration
}

func NewTokenService(secret string, tokenTTL time.Duration) *TokenService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), tokenTTL: tokenTTL}
}

// Issue signs a token carrying the identity claims and an absolute expiration.
func (s *TokenService) Issue(claims ports.Claims) (string, error) {
	mc := jwt.MapClaims{
		"id":       claims.UserID,
		"email":    claims.Email,
		"username": claims.Username,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	return t.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded claims
// unmodified. Failures map onto exactly two domain errors so callers can
// distinguish a stale session from a forged or mangled token.
func (s *TokenService) Verify(token string) (*ports.Claims, error) {
	mc := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, mc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}
	if !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	userID, _ := mc["id"].(string)
	email, _ := mc["email"].(string)
	username, _ := mc["username"].(string)
	if userID == "" {
		return nil, domain.ErrInvalidToken
	}

	return &ports.Claims{UserID: userID, Email: email, Username: username}, nil
}
