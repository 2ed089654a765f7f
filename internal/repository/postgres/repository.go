package postgres

import (
	"context"

	"github.com/ElSheemy11/High-Up/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type User interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*model.User, error)
	FindFullByID(ctx context.Context, id uuid.UUID) (*model.FullUser, error)
	FindFullByUsername(ctx context.Context, username string) (*model.FullUser, error)
	FindSuggestions(ctx context.Context, userID uuid.UUID, limit int) ([]*model.SuggestedUser, error)
}

type Follow interface {
	Exists(ctx context.Context, followerID uuid.UUID, followingID uuid.UUID) (bool, error)
	Create(ctx context.Context, follow model.Follow) error
	Delete(ctx context.Context, followerID uuid.UUID, followingID uuid.UUID) (bool, error)
}

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindAll(ctx context.Context, limit int, offset int) ([]*model.FullPost, error)
	FindByAuthorID(ctx context.Context, authorID uuid.UUID, limit int, offset int) ([]*model.FullPost, error)
	FindLikedByUserID(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullPost, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type Like interface {
	Exists(ctx context.Context, userID uuid.UUID, postID uuid.UUID) (bool, error)
	Create(ctx context.Context, like model.Like) error
	Delete(ctx context.Context, userID uuid.UUID, postID uuid.UUID) (bool, error)
	DeleteByPostID(ctx context.Context, postID uuid.UUID) error
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindByPostID(ctx context.Context, postID uuid.UUID) ([]*model.FullComment, error)
	DeleteByPostID(ctx context.Context, postID uuid.UUID) error
}

type Notification interface {
	Create(ctx context.Context, notification model.Notification) (*model.Notification, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullNotification, error)
}

// Transactor runs fn against a repository bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx *PostgresRepository) error) error
}

type PostgresRepository struct {
	Transactor
	User         User
	Follow       Follow
	Post         Post
	Like         Like
	Comment      Comment
	Notification Notification

	db DB
}

func New(db DB) *PostgresRepository {
	return &PostgresRepository{
		Transactor:   &txRunner{db: db},
		User:         newUserRepo(db),
		Follow:       newFollowRepo(db),
		Post:         newPostRepo(db),
		Like:         newLikeRepo(db),
		Comment:      newCommentRepo(db),
		Notification: newNotificationRepo(db),
		db:           db,
	}
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	if r.db == nil {
		return errNoDB
	}
	var one int
	return r.db.QueryRow(ctx, "SELECT 1").Scan(&one)
}

type txRunner struct {
	db DB
}

func (t *txRunner) WithinTx(ctx context.Context, fn func(tx *PostgresRepository) error) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(New(tx)); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}

const MAX_LIMIT = 50

func maximumLimit(l *int) {
	if *l > MAX_LIMIT || *l <= 0 {
		*l = MAX_LIMIT
	}
}
