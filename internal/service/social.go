package service

import (
	"context"
	"errors"

	"github.com/ElSheemy11/High-Up/internal/metrics"
	"github.com/ElSheemy11/High-Up/internal/model"
	"github.com/ElSheemy11/High-Up/internal/repository"
	"github.com/ElSheemy11/High-Up/internal/repository/postgres"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FollowResult struct {
	FollowingNow bool `json:"following_now"`
}

type socialService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	identity Identity
	events   *notifier
}

func newSocialService(logger *zap.Logger, repo *repository.Repository, identity Identity, events *notifier) Social {
	return &socialService{
		logger:   logger,
		repo:     repo,
		identity: identity,
		events:   events,
	}
}

// ToggleFollow flips the follow edge from the caller to targetID. Creating the edge also
// appends a FOLLOW notification for the target in the same transaction; removing it appends nothing.
// Anonymous callers yield (nil, nil).
func (s *socialService) ToggleFollow(ctx context.Context, caller model.Caller, targetID uuid.UUID) (*FollowResult, error) {
	actorID, err := resolveActor(ctx, s.identity, caller)
	if err != nil {
		return nil, err
	}
	if actorID == nil {
		return nil, nil
	}
	if *actorID == targetID {
		return nil, ErrInvalidOperation
	}

	following, err := s.repo.Postgres.Follow.Exists(ctx, *actorID, targetID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check follow(%s -> %s) in postgres: %s", actorID, targetID, err.Error())
		return nil, ErrInternal
	}

	if following {
		if _, err := s.repo.Postgres.Follow.Delete(ctx, *actorID, targetID); err != nil {
			s.logger.Sugar().Errorf("failed to delete follow(%s -> %s) in postgres: %s", actorID, targetID, err.Error())
			return nil, ErrInternal
		}

		metrics.FollowToggles.WithLabelValues("unfollowed").Inc()
		return &FollowResult{FollowingNow: false}, nil
	}

	var notification *model.Notification
	err = s.repo.Postgres.WithinTx(ctx, func(tx *postgres.PostgresRepository) error {
		if err := tx.Follow.Create(ctx, model.Follow{FollowerID: *actorID, FollowingID: targetID}); err != nil {
			return err
		}

		created, err := tx.Notification.Create(ctx, model.Notification{
			Type:      model.NotificationFollow,
			UserID:    targetID,
			CreatorID: *actorID,
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
			// A concurrent toggle committed the edge first; report what is stored now.
			metrics.ConstraintConflicts.WithLabelValues("toggle_follow").Inc()
			following, err := s.repo.Postgres.Follow.Exists(ctx, *actorID, targetID)
			if err != nil {
				s.logger.Sugar().Errorf("failed to re-check follow(%s -> %s) in postgres: %s", actorID, targetID, err.Error())
				return nil, ErrInternal
			}
			return &FollowResult{FollowingNow: following}, nil
		case errors.Is(err, postgres.ErrMissingReference):
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to create follow(%s -> %s) in postgres: %s", actorID, targetID, err.Error())
		return nil, ErrInternal
	}

	metrics.FollowToggles.WithLabelValues("followed").Inc()
	s.events.committed(ctx, notification)
	return &FollowResult{FollowingNow: true}, nil
}

func (s *socialService) IsFollowing(ctx context.Context, caller model.Caller, targetID uuid.UUID) (bool, error) {
	actorID, err := resolveActor(ctx, s.identity, caller)
	if err != nil {
		return false, err
	}
	if actorID == nil {
		return false, nil
	}

	following, err := s.repo.Postgres.Follow.Exists(ctx, *actorID, targetID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check follow(%s -> %s) in postgres: %s", actorID, targetID, err.Error())
		return false, ErrInternal
	}

	return following, nil
}
