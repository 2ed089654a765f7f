package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ElSheemy11/High-Up/internal/model"
	"github.com/ElSheemy11/High-Up/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type userService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newUserService(logger *zap.Logger, repo *repository.Repository) User {
	return &userService{
		logger: logger,
		repo:   repo,
	}
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*model.FullUser, error) {
	user, err := s.repo.Postgres.User.FindFullByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(id: %s) in postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	return user, nil
}

func (s *userService) GetProfileByUsername(ctx context.Context, username string) (*model.FullUser, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return nil, ErrUserNotFound
	}

	user, err := s.repo.Postgres.User.FindFullByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(username: %s) in postgres: %s", username, err.Error())
		return nil, ErrInternal
	}

	return user, nil
}
