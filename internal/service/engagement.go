package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ElSheemy11/High-Up/internal/metrics"
	"github.com/ElSheemy11/High-Up/internal/model"
	"github.com/ElSheemy11/High-Up/internal/repository"
	"github.com/ElSheemy11/High-Up/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type LikeResult struct {
	Liked bool `json:"liked"`
}

type engagementService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	identity Identity
	events   *notifier
}

func newEngagementService(logger *zap.Logger, repo *repository.Repository, identity Identity, events *notifier) Engagement {
	return &engagementService{
		logger:   logger,
		repo:     repo,
		identity: identity,
		events:   events,
	}
}

func (s *engagementService) CreatePost(ctx context.Context, caller model.Caller, content string, imageURL *string) (*model.Post, error) {
	content = strings.TrimSpace(content)
	if imageURL != nil && strings.TrimSpace(*imageURL) == "" {
		imageURL = nil
	}
	if content == "" && imageURL == nil {
		return nil, ErrEmptyPost
	}

	authorID, err := resolveActor(ctx, s.identity, caller)
	if err != nil {
		return nil, err
	}
	if authorID == nil {
		return nil, ErrUnauthorized
	}

	post, err := s.repo.Postgres.Post.Create(ctx, model.Post{
		AuthorID: *authorID,
		Content:  content,
		ImageURL: imageURL,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to create post for user(id: %s) in postgres: %s", authorID, err.Error())
		return nil, ErrInternal
	}

	return post, nil
}

func (s *engagementService) GetPosts(ctx context.Context, limit int, offset int) ([]*model.FullPost, error) {
	posts, err := s.repo.Postgres.Post.FindAll(ctx, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts in postgres: %s", err.Error())
		return nil, ErrInternal
	}

	return posts, nil
}

func (s *engagementService) GetUserPosts(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullPost, error) {
	posts, err := s.repo.Postgres.Post.FindByAuthorID(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts of user(id: %s) in postgres: %s", userID, err.Error())
		return nil, ErrInternal
	}

	return posts, nil
}

func (s *engagementService) GetUserLikedPosts(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullPost, error) {
	posts, err := s.repo.Postgres.Post.FindLikedByUserID(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts liked by user(id: %s) in postgres: %s", userID, err.Error())
		return nil, ErrInternal
	}

	return posts, nil
}

// ToggleLike flips the caller's like on postID. A new like on someone else's post appends a
// LIKE notification for the author in the same transaction. Anonymous callers yield (nil, nil).
func (s *engagementService) ToggleLike(ctx context.Context, caller model.Caller, postID uuid.UUID) (*LikeResult, error) {
	actorID, err := resolveActor(ctx, s.identity, caller)
	if err != nil {
		return nil, err
	}
	if actorID == nil {
		return nil, nil
	}

	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked, err := s.repo.Postgres.Like.Exists(ctx, *actorID, postID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check like(user: %s, post: %s) in postgres: %s", actorID, postID, err.Error())
		return nil, ErrInternal
	}

	if liked {
		if _, err := s.repo.Postgres.Like.Delete(ctx, *actorID, postID); err != nil {
			s.logger.Sugar().Errorf("failed to delete like(user: %s, post: %s) in postgres: %s", actorID, postID, err.Error())
			return nil, ErrInternal
		}

		metrics.LikeToggles.WithLabelValues("unliked").Inc()
		return &LikeResult{Liked: false}, nil
	}

	var notification *model.Notification
	err = s.repo.Postgres.WithinTx(ctx, func(tx *postgres.PostgresRepository) error {
		if err := tx.Like.Create(ctx, model.Like{UserID: *actorID, PostID: postID}); err != nil {
			return err
		}

		if post.AuthorID == *actorID {
			return nil
		}

		created, err := tx.Notification.Create(ctx, model.Notification{
			Type:      model.NotificationLike,
			UserID:    post.AuthorID,
			CreatorID: *actorID,
			PostID:    &postID,
		})
		if err != nil {
			return err
		}

		notification = created
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrConflict):
			metrics.ConstraintConflicts.WithLabelValues("toggle_like").Inc()
			liked, err := s.repo.Postgres.Like.Exists(ctx, *actorID, postID)
			if err != nil {
				s.logger.Sugar().Errorf("failed to re-check like(user: %s, post: %s) in postgres: %s", actorID, postID, err.Error())
				return nil, ErrInternal
			}
			return &LikeResult{Liked: liked}, nil
		case errors.Is(err, postgres.ErrMissingReference):
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to create like(user: %s, post: %s) in postgres: %s", actorID, postID, err.Error())
		return nil, ErrInternal
	}

	metrics.LikeToggles.WithLabelValues("liked").Inc()
	s.events.committed(ctx, notification)
	return &LikeResult{Liked: true}, nil
}

// CreateComment stores a trimmed, non-empty comment on postID. Commenting on someone else's post
// appends a COMMENT notification for the author in the same transaction. Anonymous callers yield (nil, nil).
func (s *engagementService) CreateComment(ctx context.Context, caller model.Caller, postID uuid.UUID, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	actorID, err := resolveActor(ctx, s.identity, caller)
	if err != nil {
		return nil, err
	}
	if actorID == nil {
		return nil, nil
	}

	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	var (
		comment      *model.Comment
		notification *model.Notification
	)
	err = s.repo.Postgres.WithinTx(ctx, func(tx *postgres.PostgresRepository) error {
		created, err := tx.Comment.Create(ctx, model.Comment{
			AuthorID: *actorID,
			PostID:   postID,
			Content:  text,
		})
		if err != nil {
			return err
		}
		comment = created

		if post.AuthorID == *actorID {
			return nil
		}

		notification, err = tx.Notification.Create(ctx, model.Notification{
			Type:      model.NotificationComment,
			UserID:    post.AuthorID,
			CreatorID: *actorID,
			PostID:    &postID,
			CommentID: &created.ID,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, postgres.ErrMissingReference) {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to create comment(user: %s, post: %s) in postgres: %s", actorID, postID, err.Error())
		return nil, ErrInternal
	}

	metrics.CommentsCreated.Inc()
	s.events.committed(ctx, notification)
	return comment, nil
}

func (s *engagementService) GetComments(ctx context.Context, postID uuid.UUID) ([]*model.FullComment, error) {
	comments, err := s.repo.Postgres.Comment.FindByPostID(ctx, postID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find comments of post(id: %s) in postgres: %s", postID, err.Error())
		return nil, ErrInternal
	}

	return comments, nil
}

// DeletePost removes postID together with its likes and comments. Only the author may delete it.
// Notifications that reference the post are left in place.
func (s *engagementService) DeletePost(ctx context.Context, caller model.Caller, postID uuid.UUID) error {
	actorID, err := resolveActor(ctx, s.identity, caller)
	if err != nil {
		return err
	}

	post, err := s.findPost(ctx, postID)
	if err != nil {
		return err
	}

	if actorID == nil || post.AuthorID != *actorID {
		return ErrForbidden
	}

	err = s.repo.Postgres.WithinTx(ctx, func(tx *postgres.PostgresRepository) error {
		if err := tx.Like.DeleteByPostID(ctx, postID); err != nil {
			return err
		}
		if err := tx.Comment.DeleteByPostID(ctx, postID); err != nil {
			return err
		}
		return tx.Post.DeleteByID(ctx, postID)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to delete post(id: %s) in postgres: %s", postID, err.Error())
		return ErrInternal
	}

	return nil
}

func (s *engagementService) findPost(ctx context.Context, postID uuid.UUID) (*model.Post, error) {
	post, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(id: %s) in postgres: %s", postID, err.Error())
		return nil, ErrInternal
	}

	return post, nil
}
