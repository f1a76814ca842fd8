package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkpress/blog-api/internal/core/ports"
)

// ctxClaims extracts the identity claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-empty user id
// proves the middleware ran.
func ctxClaims(c echo.Context) (ports.Claims, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return ports.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ := c.Get("email").(string)
	username, _ := c.Get("username").(string)

	return ports.Claims{UserID: userID, Email: email, Username: username}, nil
}
