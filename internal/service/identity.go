package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/ElSheemy11/High-Up/internal/metrics"
	"github.com/ElSheemy11/High-Up/internal/model"
	"github.com/ElSheemy11/High-Up/internal/repository"
	"github.com/ElSheemy11/High-Up/internal/repository/postgres"
	"github.com/ElSheemy11/High-Up/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	MIN_USERNAME_SUFFIX = 1_000
	MAX_USERNAME_SUFFIX = 9_999

	MAX_PROVISIONING_ATTEMPTS = 5

	FALLBACK_USERNAME = "user"
)

type identityService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	cacheTTL time.Duration
}

func newIdentityService(logger *zap.Logger, repo *repository.Repository, cacheTTL time.Duration) Identity {
	return &identityService{
		logger:   logger,
		repo:     repo,
		cacheTTL: cacheTTL,
	}
}

func newRandomCode(min int, max int) int {
	return rand.Intn(max-min) + min
}

// SyncIdentity returns the local user for identity, creating it on first sighting.
// An existing user is returned unchanged. Anonymous identities yield (nil, nil).
func (s *identityService) SyncIdentity(ctx context.Context, identity *model.ExternalIdentity) (*model.User, error) {
	caller := identity.Caller()
	if caller.IsAnonymous() {
		return nil, nil
	}

	existing, err := s.repo.Postgres.User.FindByExternalID(ctx, caller.ExternalID)
	if err == nil {
		s.cacheUserID(ctx, caller.ExternalID, existing.ID)
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		s.logger.Sugar().Errorf("failed to find user(external id: %s) in postgres: %s", caller.ExternalID, err.Error())
		return nil, ErrProvisioning
	}

	username := deriveUsername(identity)
	newUser := model.User{
		ExternalID: caller.ExternalID,
		Email:      primaryEmail(identity),
		Username:   username,
		Name:       displayName(identity),
	}
	if imageURL := strings.TrimSpace(identity.ImageURL); imageURL != "" {
		newUser.ImageURL = &imageURL
	}

	for attempt := 1; attempt <= MAX_PROVISIONING_ATTEMPTS; attempt++ {
		createdUser, err := s.repo.Postgres.User.Create(ctx, newUser)
		if err == nil {
			metrics.UsersProvisioned.Inc()
			s.cacheUserID(ctx, caller.ExternalID, createdUser.ID)
			return createdUser, nil
		}

		constraint, conflict := postgres.ConflictConstraint(err)
		if !conflict {
			s.logger.Sugar().Errorf("failed to create user(external id: %s) in postgres: %s", caller.ExternalID, err.Error())
			return nil, ErrProvisioning
		}

		// The username belongs to a different identity: try a suffixed one.
		if constraint == postgres.ConstraintUsersUsername {
			newUser.Username = fmt.Sprintf("%s%d", username, newRandomCode(MIN_USERNAME_SUFFIX, MAX_USERNAME_SUFFIX))
			continue
		}

		// A concurrent first sighting of the same identity won the insert.
		metrics.ConstraintConflicts.WithLabelValues("sync_identity").Inc()
		provisioned, err := s.repo.Postgres.User.FindByExternalID(ctx, caller.ExternalID)
		if err != nil {
			s.logger.Sugar().Errorf("failed to re-fetch user(external id: %s) after conflict on %s: %s", caller.ExternalID, constraint, err.Error())
			return nil, ErrProvisioning
		}
		s.cacheUserID(ctx, caller.ExternalID, provisioned.ID)
		return provisioned, nil
	}

	s.logger.Sugar().Errorf("failed to find a free username for user(external id: %s) after %d attempts", caller.ExternalID, MAX_PROVISIONING_ATTEMPTS)
	return nil, ErrProvisioning
}

// ResolveLocalID maps the caller to an internal user id. Anonymous callers yield (nil, nil);
// an authenticated caller without a local record yields ErrUserNotFound.
func (s *identityService) ResolveLocalID(ctx context.Context, caller model.Caller) (*uuid.UUID, error) {
	if caller.IsAnonymous() {
		return nil, nil
	}

	key := redisrepo.UserIDKey(caller.ExternalID)
	cached, err := s.repo.Redis.Default.Get(ctx, key).Result()
	switch {
	case err == nil:
		id, parseErr := uuid.Parse(cached)
		if parseErr == nil {
			return &id, nil
		}
		s.logger.Sugar().Warnf("invalid user id(%s) cached under key(%s)", cached, key)
	case err != redis.Nil:
		s.logger.Sugar().Errorf("failed to get key(%s) from redis: %s", key, err.Error())
	}

	user, err := s.repo.Postgres.User.FindByExternalID(ctx, caller.ExternalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(external id: %s) in postgres: %s", caller.ExternalID, err.Error())
		return nil, ErrInternal
	}

	s.cacheUserID(ctx, caller.ExternalID, user.ID)
	return &user.ID, nil
}

func (s *identityService) cacheUserID(ctx context.Context, externalID string, id uuid.UUID) {
	key := redisrepo.UserIDKey(externalID)
	if err := s.repo.Redis.Default.Set(ctx, key, id.String(), s.cacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set key(%s) in redis: %s", key, err.Error())
	}
}

// resolveActor resolves the caller for mutating operations. ErrUserNotFound is propagated,
// any other failure has already been logged and becomes ErrInternal.
func resolveActor(ctx context.Context, identity Identity, caller model.Caller) (*uuid.UUID, error) {
	id, err := identity.ResolveLocalID(ctx, caller)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, ErrInternal
	}

	return id, nil
}

func deriveUsername(identity *model.ExternalIdentity) string {
	if identity.Username != nil {
		if handle := strings.TrimSpace(*identity.Username); handle != "" {
			return handle
		}
	}

	email := primaryEmail(identity)
	if local, _, found := strings.Cut(email, "@"); found && local != "" {
		return local
	}
	if email != "" && !strings.Contains(email, "@") {
		return email
	}

	return FALLBACK_USERNAME
}

// primaryEmail is the first non-blank contact address.
func primaryEmail(identity *model.ExternalIdentity) string {
	addresses := lo.Compact(lo.Map(identity.EmailAddresses, func(address string, _ int) string {
		return strings.TrimSpace(address)
	}))
	first, _ := lo.First(addresses)
	return first
}

func displayName(identity *model.ExternalIdentity) string {
	return strings.TrimSpace(lo.FromPtr(identity.FirstName) + " " + lo.FromPtr(identity.LastName))
}
