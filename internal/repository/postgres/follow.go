package postgres

import (
	"context"
	"time"

	"github.com/ElSheemy11/High-Up/internal/model"
	"github.com/google/uuid"
)

type followRepo struct {
	db DB
}

func newFollowRepo(db DB) Follow {
	return &followRepo{
		db: db,
	}
}

func (r *followRepo) Exists(ctx context.Context, followerID uuid.UUID, followingID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM follows f WHERE f.follower_id = $1 AND f.following_id = $2)",
		followerID,
		followingID,
	).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *followRepo) Create(ctx context.Context, follow model.Follow) error {
	if follow.CreatedAt.IsZero() {
		follow.CreatedAt = time.Now()
	}
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO follows(follower_id, following_id, created_at) VALUES($1, $2, $3)",
		follow.FollowerID,
		follow.FollowingID,
		follow.CreatedAt,
	)
	return mapError(err)
}

// Delete reports whether an edge was removed.
func (r *followRepo) Delete(ctx context.Context, followerID uuid.UUID, followingID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM follows WHERE follower_id = $1 AND following_id = $2", followerID, followingID)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}
