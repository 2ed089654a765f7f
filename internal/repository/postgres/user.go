package postgres

import (
	"context"
	"time"

	"github.com/ElSheemy11/High-Up/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = "u.id, u.external_id, u.email, u.username, u.name, u.bio, u.image_url, u.created_at, u.updated_at"

const fullUserQuery = `
	SELECT
	` + userColumns + `,
	(SELECT COUNT(*) FROM follows f WHERE f.following_id = u.id) AS follower_count,
	(SELECT COUNT(*) FROM follows f WHERE f.follower_id = u.id) AS following_count,
	(SELECT COUNT(*) FROM posts p WHERE p.author_id = u.id) AS post_count
	FROM users u
	`

type userRepo struct {
	db DB
}

func newUserRepo(db DB) User {
	return &userRepo{
		db: db,
	}
}

func (r *userRepo) Create(ctx context.Context, user model.User) (*model.User, error) {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO users(id, external_id, email, username, name, image_url, created_at, updated_at) VALUES($1, $2, $3, $4, $5, $6, $7, $8)",
		user.ID,
		user.ExternalID,
		user.Email,
		user.Username,
		user.Name,
		user.ImageURL,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &user, nil
}

func scanUser(row pgx.Row, user *model.User, extra ...any) error {
	dest := []any{
		&user.ID,
		&user.ExternalID,
		&user.Email,
		&user.Username,
		&user.Name,
		&user.Bio,
		&user.ImageURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := scanUser(r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users u WHERE u.id = $1", id), &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	var user model.User
	if err := scanUser(r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users u WHERE u.external_id = $1", externalID), &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) findFull(ctx context.Context, where string, arg any) (*model.FullUser, error) {
	var user model.FullUser
	if err := scanUser(
		r.db.QueryRow(ctx, fullUserQuery+where, arg),
		&user.User,
		&user.FollowerCount,
		&user.FollowingCount,
		&user.PostCount,
	); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) FindFullByID(ctx context.Context, id uuid.UUID) (*model.FullUser, error) {
	return r.findFull(ctx, "WHERE u.id = $1", id)
}

func (r *userRepo) FindFullByUsername(ctx context.Context, username string) (*model.FullUser, error) {
	return r.findFull(ctx, "WHERE u.username = $1", username)
}

// FindSuggestions returns up to limit users that are neither userID nor already followed by userID.
// No ordering is applied.
func (r *userRepo) FindSuggestions(ctx context.Context, userID uuid.UUID, limit int) ([]*model.SuggestedUser, error) {
	maximumLimit(&limit)

	rows, err := r.db.Query(
		ctx,
		`
		SELECT
		u.id, u.name, u.username, u.image_url,
		(SELECT COUNT(*) FROM follows f WHERE f.following_id = u.id) AS follower_count
		FROM users u
		WHERE u.id <> $1
		AND NOT EXISTS (SELECT 1 FROM follows f WHERE f.follower_id = $1 AND f.following_id = u.id)
		LIMIT $2
		`,
		userID,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*model.SuggestedUser{}
	for rows.Next() {
		var user model.SuggestedUser
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Username,
			&user.ImageURL,
			&user.FollowerCount,
		); err != nil {
			return nil, err
		}

		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
