package postgres

import (
	"context"
	"time"

	"github.com/ElSheemy11/High-Up/internal/model"
	"github.com/google/uuid"
)

type notificationRepo struct {
	db DB
}

func newNotificationRepo(db DB) Notification {
	return &notificationRepo{
		db: db,
	}
}

func (r *notificationRepo) Create(ctx context.Context, notification model.Notification) (*model.Notification, error) {
	notification.ID = uuid.New()
	notification.CreatedAt = time.Now()
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO notifications(id, type, user_id, creator_id, post_id, comment_id, created_at) VALUES($1, $2, $3, $4, $5, $6, $7)",
		notification.ID,
		string(notification.Type),
		notification.UserID,
		notification.CreatorID,
		notification.PostID,
		notification.CommentID,
		notification.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &notification, nil
}

// FindByUserID returns the notifications received by userID, newest first.
func (r *notificationRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullNotification, error) {
	maximumLimit(&limit)

	rows, err := r.db.Query(
		ctx,
		`
		SELECT n.id, n.type, n.user_id, n.creator_id, n.post_id, n.comment_id, n.created_at, u.id, u.name, u.username, u.image_url
		FROM notifications n
		JOIN users u ON u.id = n.creator_id
		WHERE n.user_id = $1
		ORDER BY n.created_at DESC
		LIMIT $2
		OFFSET $3
		`,
		userID,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []*model.FullNotification{}
	for rows.Next() {
		var (
			notification     model.FullNotification
			notificationType string
		)
		if err := rows.Scan(
			&notification.ID,
			&notificationType,
			&notification.UserID,
			&notification.CreatorID,
			&notification.PostID,
			&notification.CommentID,
			&notification.CreatedAt,
			&notification.Creator.ID,
			&notification.Creator.Name,
			&notification.Creator.Username,
			&notification.Creator.ImageURL,
		); err != nil {
			return nil, err
		}
		notification.Type = model.NotificationType(notificationType)

		notifications = append(notifications, &notification)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}
