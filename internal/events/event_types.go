package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventPostLiked      EventType = "post_liked"
	EventCommentAdded   EventType = "comment_added"
	EventFriendAdded    EventType = "friend_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   int64       `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps a new event with a random id and the current time.
func NewEvent(eventType EventType, actorID int64, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PostLikedPayload payload.
type PostLikedPayload struct {
	PostID     int64 `json:"post_id"`
	Liked      bool  `json:"liked"`
	LikesCount int   `json:"likes_count"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	PostID      int64  `json:"post_id"`
	CommentID   int64  `json:"comment_id"`
	BodyPreview string `json:"body_preview"`
}

// FriendAddedPayload payload.
type FriendAddedPayload struct {
	FriendID int64 `json:"friend_id"`
}
