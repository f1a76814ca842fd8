package ports

// Claims are the identity fields embedded in a session token.
type Claims struct {
	UserID   string
	Email    string
	Username string
}

// TokenService issues and verifies signed, time-limited session tokens.
// Tokens are never persisted server-side; logout is client-side cookie
// clearing, so an issued token stays valid until natural expiry.
type TokenService interface {
	// Issue produces a signed token embedding claims and an absolute
	// expiration 24 hours from now.
	Issue(claims Claims) (string, error)
	// Verify returns the original claims, domain.ErrInvalidToken when the
	// signature does not match or the token is malformed, or
	// domain.ErrTokenExpired when past the embedded expiration.
	Verify(token string) (*Claims, error)
}
