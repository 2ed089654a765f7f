package postgres

import (
	"context"
	"time"

	"github.com/ElSheemy11/High-Up/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const fullPostQuery = `
	SELECT
	p.id, p.author_id, p.content, p.image_url, p.created_at, p.updated_at,
	u.id, u.name, u.username, u.image_url,
	(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS like_count,
	(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count
	FROM posts p
	JOIN users u ON u.id = p.author_id
	`

type postRepo struct {
	db DB
}

func newPostRepo(db DB) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	post.ID = uuid.New()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO posts(id, author_id, content, image_url, created_at, updated_at) VALUES($1, $2, $3, $4, $5, $6)",
		post.ID,
		post.AuthorID,
		post.Content,
		post.ImageURL,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.QueryRow(
		ctx,
		"SELECT p.id, p.author_id, p.content, p.image_url, p.created_at, p.updated_at FROM posts p WHERE p.id = $1",
		id,
	).Scan(
		&post.ID,
		&post.AuthorID,
		&post.Content,
		&post.ImageURL,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindAll(ctx context.Context, limit int, offset int) ([]*model.FullPost, error) {
	maximumLimit(&limit)

	return r.queryFull(ctx, fullPostQuery+"ORDER BY p.created_at DESC LIMIT $1 OFFSET $2", limit, offset)
}

func (r *postRepo) FindByAuthorID(ctx context.Context, authorID uuid.UUID, limit int, offset int) ([]*model.FullPost, error) {
	maximumLimit(&limit)

	return r.queryFull(ctx, fullPostQuery+"WHERE p.author_id = $1 ORDER BY p.created_at DESC LIMIT $2 OFFSET $3", authorID, limit, offset)
}

func (r *postRepo) FindLikedByUserID(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullPost, error) {
	maximumLimit(&limit)

	return r.queryFull(
		ctx,
		fullPostQuery+"JOIN likes lk ON lk.post_id = p.id WHERE lk.user_id = $1 ORDER BY p.created_at DESC LIMIT $2 OFFSET $3",
		userID,
		limit,
		offset,
	)
}

func (r *postRepo) queryFull(ctx context.Context, query string, args ...any) ([]*model.FullPost, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*model.FullPost{}
	for rows.Next() {
		post, err := scanFullPost(rows)
		if err != nil {
			return nil, err
		}

		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func scanFullPost(row pgx.Row) (*model.FullPost, error) {
	var post model.FullPost
	if err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.Content,
		&post.ImageURL,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.Author.ID,
		&post.Author.Name,
		&post.Author.Username,
		&post.Author.ImageURL,
		&post.LikeCount,
		&post.CommentCount,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
