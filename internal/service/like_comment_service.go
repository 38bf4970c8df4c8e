package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"

	"github.com/echonet/echonet/internal/domain"
	"github.com/echonet/echonet/internal/events"
	"github.com/echonet/echonet/internal/repository"
	apperrors "github.com/echonet/echonet/pkg/util/errorutil"
)

const (
	maxCommentLength = 2000
	previewLength    = 80
)

// LikeCommentService handles likes and comments on posts.
type LikeCommentService struct {
	posts      repository.PostRepository
	likes      repository.LikeRepository
	comments   repository.CommentRepository
	dispatcher events.Dispatcher
}

// LikeCommentDependencies bundles repositories for the service.
type LikeCommentDependencies struct {
	PostRepo    repository.PostRepository
	LikeRepo    repository.LikeRepository
	CommentRepo repository.CommentRepository
	Dispatcher  events.Dispatcher
}

// NewLikeCommentService builds the service.
func NewLikeCommentService(deps LikeCommentDependencies) *LikeCommentService {
	return &LikeCommentService{
		posts:      deps.PostRepo,
		likes:      deps.LikeRepo,
		comments:   deps.CommentRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ToggleLike flips the caller's like on a post.
func (s *LikeCommentService) ToggleLike(ctx context.Context, postID, userID int64) (*domain.LikeStatus, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}
	liked, err := s.likes.Toggle(ctx, postID, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	count, err := s.likes.CountByPost(ctx, postID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	publish(ctx, s.dispatcher, events.NewEvent(events.EventPostLiked, userID, events.PostLikedPayload{
		PostID:     postID,
		Liked:      liked,
		LikesCount: count,
	}))
	return &domain.LikeStatus{Liked: liked, LikesCount: count}, nil
}

// LikeStatus reports whether the caller likes a post and its like count.
func (s *LikeCommentService) LikeStatus(ctx context.Context, postID, userID int64) (*domain.LikeStatus, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}
	liked, err := s.likes.Exists(ctx, postID, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	count, err := s.likes.CountByPost(ctx, postID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &domain.LikeStatus{Liked: liked, LikesCount: count}, nil
}

// AddComment stores a comment by authorID on a post.
func (s *LikeCommentService) AddComment(ctx context.Context, postID, authorID int64, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("content required", nil)
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return nil, apperrors.NewValidationError("content too long", map[string]any{"max": maxCommentLength})
	}
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{PostID: postID, AuthorID: authorID, Content: content}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}

	publish(ctx, s.dispatcher, events.NewEvent(events.EventCommentAdded, authorID, events.CommentAddedPayload{
		PostID:      postID,
		CommentID:   comment.ID,
		BodyPreview: preview(content),
	}))
	return comment, nil
}

// Comments lists a post's comments newest first.
func (s *LikeCommentService) Comments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return comments, nil
}

// DeleteComment removes a comment. Only its author may do so.
func (s *LikeCommentService) DeleteComment(ctx context.Context, commentID, userID int64) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("comment", map[string]any{"comment_id": commentID})
		}
		return apperrors.MapError(err)
	}
	if comment.AuthorID != userID {
		return apperrors.NewForbidden("only the author may delete this comment")
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("comment", map[string]any{"comment_id": commentID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *LikeCommentService) ensurePost(ctx context.Context, postID int64) error {
	exists, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !exists {
		return apperrors.NewNotFound("post", map[string]any{"post_id": postID})
	}
	return nil
}

func preview(content string) string {
	if utf8.RuneCountInString(content) <= previewLength {
		return content
	}
	return string([]rune(content)[:previewLength]) + "..."
}
