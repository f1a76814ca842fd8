package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkpress/blog-api/internal/api/metrics"
	"github.com/inkpress/blog-api/internal/core/ports"
)

// CoverStore is the interface the handler uses to persist uploaded cover
// images. The returned path is stored on the post and served statically.
type CoverStore interface {
	Save(src io.Reader, originalName string) (string, error)
}

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	service ports.PostService
	covers  CoverStore
}

func NewPostHandler(service ports.PostService, covers CoverStore) *PostHandler {
	return &PostHandler{service: service, covers: covers}
}

// Create handles POST /post — multipart form with title, summary, content,
// and a required cover image. The file is written to disk first and the
// record inserted second; the two phases are not atomic.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Param        title    formData  string  true  "Title"
// @Param        summary  formData  string  true  "Summary"
// @Param        content  formData  string  true  "Content (markup)"
// @Param        file     formData  file    true  "Cover image"
// @Success      201  {object}  messageResponse
// @Failure      400  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /post [post]
func (h *PostHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	coverPath, err := h.storeCover(c)
	if err != nil {
		return err
	}
	if coverPath == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "cover image is required")
	}

	_, err = h.service.Create(c.Request().Context(), ports.CreatePostInput{
		Title:     req.Title,
		Summary:   req.Summary,
		Content:   req.Content,
		CoverPath: coverPath,
		AuthorID:  claims.UserID,
	})
	if err != nil {
		return err
	}

	metrics.PostsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, messageResponse{Success: true, Message: "Post created successfully."})
}

// List handles GET /post — the public feed, newest first, capped at the
// fixed page size. The response is a bare array, matching the original API.
//
// @Summary      List recent posts
// @Tags         posts
// @Produce      json
// @Success      200  {array}  postResponse
// @Router       /post [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.service.ListRecent(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostListResponse(posts))
}

// Get handles GET /post/:id.
//
// @Summary      Get a post by id
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postResponse
// @Failure      404  {object}  messageResponse
// @Router       /post/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Update handles PUT /post/:id — a partial multipart edit by the author.
// Only supplied fields change; a new cover file is optional.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Param        id       path      string  true   "Post id"
// @Param        title    formData  string  false  "Title"
// @Param        summary  formData  string  false  "Summary"
// @Param        content  formData  string  false  "Content (markup)"
// @Param        file     formData  file    false  "New cover image"
// @Success      200  {object}  updatePostResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /post/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	coverPath, err := h.storeCover(c)
	if err != nil {
		return err
	}

	post, err := h.service.Update(c.Request().Context(), ports.UpdatePostInput{
		ID:          c.Param("id"),
		RequesterID: claims.UserID,
		Title:       req.Title,
		Summary:     req.Summary,
		Content:     req.Content,
		CoverPath:   coverPath,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updatePostResponse{
		Success: true,
		Message: "Post updated successfully.",
		Post:    toPostResponse(post),
	})
}

// Delete handles DELETE /post/:id — author only, immediate.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /post/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), claims.UserID); err != nil {
		return err
	}

	metrics.PostsDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Post deleted successfully."})
}

// storeCover persists the uploaded "file" form part, if any, and returns its
// stored path. Returns "" when the request carries no file.
func (h *PostHandler) storeCover(c echo.Context) (string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", nil // no file part in the form
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded file")
	}
	defer src.Close()

	path, err := h.covers.Save(src, fileHeader.Filename)
	if err != nil {
		return "", err
	}

	metrics.CoverUploadBytes.Observe(float64(fileHeader.Size))
	return path, nil
}
