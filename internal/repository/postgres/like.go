package postgres

import (
	"context"
	"time"

	"github.com/ElSheemy11/High-Up/internal/model"
	"github.com/google/uuid"
)

type likeRepo struct {
	db DB
}

func newLikeRepo(db DB) Like {
	return &likeRepo{
		db: db,
	}
}

func (r *likeRepo) Exists(ctx context.Context, userID uuid.UUID, postID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM likes l WHERE l.user_id = $1 AND l.post_id = $2)",
		userID,
		postID,
	).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *likeRepo) Create(ctx context.Context, like model.Like) error {
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now()
	}
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO likes(user_id, post_id, created_at) VALUES($1, $2, $3)",
		like.UserID,
		like.PostID,
		like.CreatedAt,
	)
	return mapError(err)
}

func (r *likeRepo) Delete(ctx context.Context, userID uuid.UUID, postID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM likes WHERE user_id = $1 AND post_id = $2", userID, postID)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *likeRepo) DeleteByPostID(ctx context.Context, postID uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM likes WHERE post_id = $1", postID)
	return err
}
