package dto

import (
	"time"

	"github.com/echonet/echonet/internal/domain"
)

// CreatePostRequest payload.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// PostResponse response.
type PostResponse struct {
	ID            int64     `json:"id"`
	AuthorID      *int64    `json:"author_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// CommentResponse response.
type CommentResponse struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	AuthorID  int64     `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeStatusResponse reports the caller's like state.
type LikeStatusResponse struct {
	IsLiked    bool `json:"isLiked"`
	LikesCount int  `json:"likesCount"`
}

// NewPostResponse maps a post.
func NewPostResponse(p *domain.Post) PostResponse {
	return PostResponse{
		ID:            p.ID,
		AuthorID:      p.AuthorID,
		Title:         p.Title,
		Content:       p.Content,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		CreatedAt:     p.CreatedAt,
	}
}

// NewCommentResponse maps a comment.
func NewCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

// NewLikeStatusResponse maps a like status.
func NewLikeStatusResponse(s *domain.LikeStatus) LikeStatusResponse {
	return LikeStatusResponse{IsLiked: s.Liked, LikesCount: s.LikesCount}
}
