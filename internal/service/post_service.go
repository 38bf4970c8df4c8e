package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"

	"github.com/echonet/echonet/internal/domain"
	"github.com/echonet/echonet/internal/repository"
	apperrors "github.com/echonet/echonet/pkg/util/errorutil"
)

const (
	maxTitleLength   = 200
	maxContentLength = 5000
)

// PostService manages posts.
type PostService struct {
	posts repository.PostRepository
}

// NewPostService builds the service.
func NewPostService(posts repository.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// CreatePostInput describes a new post.
type CreatePostInput struct {
	Title   string
	Content string
}

// Create stores a post authored by authorID.
func (s *PostService) Create(ctx context.Context, authorID int64, in CreatePostInput) (*domain.Post, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)

	details := map[string]any{}
	switch {
	case title == "":
		details["title"] = "required"
	case utf8.RuneCountInString(title) > maxTitleLength:
		details["title"] = "too long"
	}
	switch {
	case content == "":
		details["content"] = "required"
	case utf8.RuneCountInString(content) > maxContentLength:
		details["content"] = "too long"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid post", details)
	}

	post := &domain.Post{AuthorID: &authorID, Title: title, Content: content}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, apperrors.MapError(err)
	}
	return post, nil
}

// List returns posts newest first.
func (s *PostService) List(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	posts, err := s.posts.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return posts, nil
}

// Get returns a single post.
func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("post", map[string]any{"post_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return post, nil
}
