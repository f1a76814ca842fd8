package handler

import (
	"time"

	"github.com/inkpress/blog-api/internal/core/domain"
)

// messageResponse is the standard envelope for mutations and errors.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// --- Auth ---

type signupRequest struct {
	Username string `json:"username" validate:"required,min=4"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// userResponse exposes only the public identity fields, never the hash.
type userResponse struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type signupResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

// claimsResponse mirrors the session token's embedded identity.
type claimsResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type profileResponse struct {
	Success bool           `json:"success"`
	User    claimsResponse `json:"user"`
}

// --- Profile ---

type updateProfileRequest struct {
	Username string `json:"username" validate:"required,min=4"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password"`
}

type updateProfileResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

// --- Posts ---

// createPostRequest binds the multipart form fields; the cover file itself is
// read from the request separately.
type createPostRequest struct {
	Title   string `form:"title"   validate:"required"`
	Summary string `form:"summary" validate:"required"`
	Content string `form:"content" validate:"required"`
}

// updatePostRequest is a partial edit; all fields are optional.
type updatePostRequest struct {
	Title   string `form:"title"`
	Summary string `form:"summary"`
	Content string `form:"content"`
}

type postAuthorResponse struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
}

type postResponse struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Summary   string             `json:"summary"`
	Content   string             `json:"content"`
	Cover     string             `json:"cover"`
	Author    postAuthorResponse `json:"author"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type updatePostResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Post    postResponse `json:"post"`
}

func toPostResponse(p *domain.Post) postResponse {
	return postResponse{
		ID:      p.ID,
		Title:   p.Title,
		Summary: p.Summary,
		Content: p.Content,
		Cover:   p.CoverPath,
		Author: postAuthorResponse{
			ID:       p.AuthorID,
			Username: p.AuthorName,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPostListResponse(posts []*domain.Post) []postResponse {
	out := make([]postResponse, len(posts))
	for i, p := range posts {
		out[i] = toPostResponse(p)
	}
	return out
}
