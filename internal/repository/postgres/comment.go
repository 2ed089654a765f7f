package postgres

import (
	"context"
	"time"

	"github.com/ElSheemy11/High-Up/internal/model"
	"github.com/google/uuid"
)

type commentRepo struct {
	db DB
}

func newCommentRepo(db DB) Comment {
	return &commentRepo{
		db: db,
	}
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	comment.ID = uuid.New()
	comment.CreatedAt = time.Now()
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO comments(id, author_id, post_id, content, created_at) VALUES($1, $2, $3, $4, $5)",
		comment.ID,
		comment.AuthorID,
		comment.PostID,
		comment.Content,
		comment.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &comment, nil
}

func (r *commentRepo) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*model.FullComment, error) {
	rows, err := r.db.Query(
		ctx,
		`
		SELECT c.id, c.author_id, c.post_id, c.content, c.created_at, u.id, u.name, u.username, u.image_url
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC
		`,
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*model.FullComment{}
	for rows.Next() {
		var comment model.FullComment
		if err := rows.Scan(
			&comment.ID,
			&comment.AuthorID,
			&comment.PostID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.Author.ID,
			&comment.Author.Name,
			&comment.Author.Username,
			&comment.Author.ImageURL,
		); err != nil {
			return nil, err
		}

		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepo) DeleteByPostID(ctx context.Context, postID uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM comments WHERE post_id = $1", postID)
	return err
}
