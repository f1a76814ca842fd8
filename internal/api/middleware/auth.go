package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkpress/blog-api/internal/core/ports"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "token"

// Auth extracts the session token from the request cookie, verifies it, and
// injects the identity claims into the echo context. An absent cookie is 401;
// a token that fails verification (bad signature, malformed, expired) is 403.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided, please login first")
			}

			claims, err := tokens.Verify(cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "failed to authenticate token")
			}

			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			c.Set("username", claims.Username)

			return next(c)
		}
	}
}
