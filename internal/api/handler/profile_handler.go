package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkpress/blog-api/internal/core/ports"
)

// ProfileHandler handles reads and edits of user profiles by id. These routes
// are deliberately unauthenticated to preserve the behavior of the system
// this API fronts; the web client only offers them for the logged-in user.
type ProfileHandler struct {
	authService ports.AuthService
}

func NewProfileHandler(authService ports.AuthService) *ProfileHandler {
	return &ProfileHandler{authService: authService}
}

// Get returns a user's public profile.
//
// @Summary      Get a profile by id
// @Tags         profile
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  updateProfileResponse
// @Failure      404  {object}  messageResponse
// @Router       /profile/{id} [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	user, err := h.authService.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updateProfileResponse{
		Success: true,
		User:    userResponse{ID: user.ID, Username: user.Username, Email: user.Email},
	})
}

// Update edits username/email and optionally the password.
//
// @Summary      Update a profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "User id"
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  updateProfileResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /profile/{id} [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), c.Param("id"), ports.UpdateProfileInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updateProfileResponse{
		Success: true,
		Message: "Profile updated successfully.",
		User:    userResponse{ID: user.ID, Username: user.Username, Email: user.Email},
	})
}

// Delete removes the account immediately. Authored posts are not cascaded.
//
// @Summary      Delete a profile
// @Tags         profile
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /profile/{id} [delete]
func (h *ProfileHandler) Delete(c echo.Context) error {
	if err := h.authService.DeleteProfile(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Profile deleted successfully"})
}
