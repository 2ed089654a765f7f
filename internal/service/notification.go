package service

import (
	"context"

	"github.com/ElSheemy11/High-Up/internal/model"
	"github.com/ElSheemy11/High-Up/internal/repository"
	"go.uber.org/zap"
)

type notificationService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	identity Identity
}

func newNotificationService(logger *zap.Logger, repo *repository.Repository, identity Identity) Notification {
	return &notificationService{
		logger:   logger,
		repo:     repo,
		identity: identity,
	}
}

// GetNotifications returns the caller's notifications newest first. Anonymous callers get an empty list.
func (s *notificationService) GetNotifications(ctx context.Context, caller model.Caller, limit int, offset int) ([]*model.FullNotification, error) {
	userID, err := resolveActor(ctx, s.identity, caller)
	if err != nil {
		return nil, err
	}
	if userID == nil {
		return []*model.FullNotification{}, nil
	}

	notifications, err := s.repo.Postgres.Notification.FindByUserID(ctx, *userID, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find notifications of user(id: %s) in postgres: %s", userID, err.Error())
		return nil, ErrInternal
	}

	return notifications, nil
}
