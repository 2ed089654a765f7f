package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationFollow  NotificationType = "FOLLOW"
	NotificationLike    NotificationType = "LIKE"
	NotificationComment NotificationType = "COMMENT"
)

// Notification is an append-only record. UserID is the recipient, CreatorID the actor.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	Type      NotificationType `json:"type"`
	UserID    uuid.UUID        `json:"user_id"`
	CreatorID uuid.UUID        `json:"creator_id"`
	PostID    *uuid.UUID       `json:"post_id"`
	CommentID *uuid.UUID       `json:"comment_id"`
	CreatedAt time.Time        `json:"created_at"`
}

type FullNotification struct {
	Notification
	Creator UserSummary `json:"creator"`
}
