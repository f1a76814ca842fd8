package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/inkpress/blog-api/internal/core/domain"
	"github.com/inkpress/blog-api/internal/core/ports"
)

// recentPostsLimit is the fixed page size of the public feed. There is no
// pagination cursor beyond this cap.
const recentPostsLimit = 20

// RecentPostsCache abstracts the Redis-backed cache for the public feed.
// Get returns (nil, nil) on a miss.
type RecentPostsCache interface {
	Get(ctx context.Context) ([]*domain.Post, error)
	Set(ctx context.Context, posts []*domain.Post) error
	Invalidate(ctx context.Context) error
}

// PostService implements post use cases, including the ownership check that
// guards every mutation.
type PostService struct {
	repo   ports.PostRepository
	cache  RecentPostsCache
	logger zerolog.Logger
}

func NewPostService(repo ports.PostRepository, cache RecentPostsCache, logger zerolog.Logger) *PostService {
	return &PostService{repo: repo, cache: cache, logger: logger}
}

// Create persists a post with AuthorID bound to the authenticated identity.
// The cover file has already been written to disk by the transport layer; the
// two phases are not transactional, so a crash here leaves an orphaned file.
func (s *PostService) Create(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	if in.Title == "" || in.Summary == "" || in.Content == "" || in.CoverPath == "" {
		return nil, domain.ErrMissingFields
	}

	post := &domain.Post{
		Title:     in.Title,
		Summary:   in.Summary,
		Content:   in.Content,
		CoverPath: in.CoverPath,
		AuthorID:  in.AuthorID,
	}

	created, err := s.repo.Create(ctx, post)
	if err != nil {
		s.logger.Error().Err(err).Str("author_id", in.AuthorID).Msg("failed to create post")
		return nil, err
	}

	s.invalidateFeed(ctx)
	s.logger.Info().Str("post_id", created.ID).Str("author_id", created.AuthorID).Msg("post created")
	return created, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.repo.FindByID(ctx, id)
}

// ListRecent serves the public feed, preferring the cache. Cache failures are
// logged and degrade to the repository; they never fail the request.
func (s *PostService) ListRecent(ctx context.Context) ([]*domain.Post, error) {
	if cached, err := s.cache.Get(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("post cache read failed, querying store")
	} else if cached != nil {
		return cached, nil
	}

	posts, err := s.repo.FindRecent(ctx, recentPostsLimit)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, posts); err != nil {
		s.logger.Warn().Err(err).Msg("post cache write failed")
	}
	return posts, nil
}

// Update applies a partial edit after verifying ownership. Absent fields are
// left untouched; the author reference is immutable.
func (s *PostService) Update(ctx context.Context, in ports.UpdatePostInput) (*domain.Post, error) {
	post, err := s.authorizeOwnership(ctx, in.ID, in.RequesterID)
	if err != nil {
		return nil, err
	}

	upd := ports.PostUpdate{
		Title:     in.Title,
		Summary:   in.Summary,
		Content:   in.Content,
		CoverPath: in.CoverPath,
	}
	if err := s.repo.UpdateByID(ctx, in.ID, upd); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	s.invalidateFeed(ctx)
	s.logger.Info().Str("post_id", post.ID).Str("author_id", post.AuthorID).Msg("post updated")
	return s.repo.FindByID(ctx, in.ID)
}

// Delete removes a post after verifying ownership. Deletion is immediate and
// irreversible; the cover file on disk is intentionally left behind.
func (s *PostService) Delete(ctx context.Context, id, requesterID string) error {
	post, err := s.authorizeOwnership(ctx, id, requesterID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	s.invalidateFeed(ctx)
	s.logger.Info().Str("post_id", post.ID).Str("author_id", post.AuthorID).Msg("post deleted")
	return nil
}

// authorizeOwnership loads the post and enforces the single authorization
// rule: the requester must be the original author.
func (s *PostService) authorizeOwnership(ctx context.Context, postID, requesterID string) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.IsOwnedBy(requesterID) {
		return nil, domain.ErrForbidden
	}
	return post, nil
}

func (s *PostService) invalidateFeed(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("post cache invalidation failed")
	}
}
