package service

import (
	"context"
	"fmt"

	"github.com/ElSheemy11/High-Up/internal/repository"
)

type systemService struct {
	repo *repository.Repository
}

func newSystemService(repo *repository.Repository) System {
	return &systemService{
		repo: repo,
	}
}

func (s *systemService) Health(ctx context.Context) error {
	if err := s.repo.Postgres.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	if err := s.repo.Redis.Ping(ctx); err != nil {
		return fmt.Errorf("redis: %w", err)
	}

	return nil
}
