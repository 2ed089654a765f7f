package service

import (
	"context"

	"github.com/ElSheemy11/High-Up/internal/model"
	"github.com/ElSheemy11/High-Up/internal/repository"
	"go.uber.org/zap"
)

type suggestionService struct {
	logger       *zap.Logger
	repo         *repository.Repository
	identity     Identity
	defaultLimit int
}

func newSuggestionService(logger *zap.Logger, repo *repository.Repository, identity Identity, defaultLimit int) Suggestion {
	return &suggestionService{
		logger:       logger,
		repo:         repo,
		identity:     identity,
		defaultLimit: defaultLimit,
	}
}

// SuggestUsers lists up to limit users the caller does not follow, excluding the caller.
// It never fails: anonymous callers and lookup errors yield an empty list.
func (s *suggestionService) SuggestUsers(ctx context.Context, caller model.Caller, limit int) []*model.SuggestedUser {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	userID, err := s.identity.ResolveLocalID(ctx, caller)
	if err != nil || userID == nil {
		return []*model.SuggestedUser{}
	}

	users, err := s.repo.Postgres.User.FindSuggestions(ctx, *userID, limit)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find suggestions for user(id: %s) in postgres: %s", userID, err.Error())
		return []*model.SuggestedUser{}
	}

	return users
}
