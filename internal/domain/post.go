package domain

import "time"

// Post is a piece of user-authored content.
type Post struct {
	ID            int64
	AuthorID      *int64
	Title         string
	Content       string
	LikesCount    int
	CommentsCount int
	CreatedAt     time.Time
}

// Comment belongs to a post and is removable only by its author.
type Comment struct {
	ID        int64
	PostID    int64
	AuthorID  int64
	Content   string
	CreatedAt time.Time
}

// LikeStatus describes a caller's like on a post.
type LikeStatus struct {
	Liked      bool
	LikesCount int
}
