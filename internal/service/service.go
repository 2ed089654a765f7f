package service

import (
	"context"
	"time"

	"github.com/ElSheemy11/High-Up/internal/model"
	"github.com/ElSheemy11/High-Up/internal/rabbitmq"
	"github.com/ElSheemy11/High-Up/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Identity interface {
	SyncIdentity(ctx context.Context, identity *model.ExternalIdentity) (*model.User, error)
	ResolveLocalID(ctx context.Context, caller model.Caller) (*uuid.UUID, error)
}

type User interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*model.FullUser, error)
	GetProfileByUsername(ctx context.Context, username string) (*model.FullUser, error)
}

type Social interface {
	ToggleFollow(ctx context.Context, caller model.Caller, targetID uuid.UUID) (*FollowResult, error)
	IsFollowing(ctx context.Context, caller model.Caller, targetID uuid.UUID) (bool, error)
}

type Engagement interface {
	CreatePost(ctx context.Context, caller model.Caller, content string, imageURL *string) (*model.Post, error)
	GetPosts(ctx context.Context, limit int, offset int) ([]*model.FullPost, error)
	GetUserPosts(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullPost, error)
	GetUserLikedPosts(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullPost, error)
	ToggleLike(ctx context.Context, caller model.Caller, postID uuid.UUID) (*LikeResult, error)
	CreateComment(ctx context.Context, caller model.Caller, postID uuid.UUID, text string) (*model.Comment, error)
	GetComments(ctx context.Context, postID uuid.UUID) ([]*model.FullComment, error)
	DeletePost(ctx context.Context, caller model.Caller, postID uuid.UUID) error
}

type Notification interface {
	GetNotifications(ctx context.Context, caller model.Caller, limit int, offset int) ([]*model.FullNotification, error)
}

type Suggestion interface {
	SuggestUsers(ctx context.Context, caller model.Caller, limit int) []*model.SuggestedUser
}

type System interface {
	Health(ctx context.Context) error
}

type Options struct {
	UserIDCacheTTL         time.Duration
	DefaultSuggestionLimit int
}

const (
	DEFAULT_USER_ID_CACHE_TTL = time.Hour * 24
	DEFAULT_SUGGESTION_LIMIT  = 3
)

type Service struct {
	Identity
	User
	Social
	Engagement
	Notification
	Suggestion
	System
}

func New(logger *zap.Logger, repo *repository.Repository, publisher rabbitmq.Publisher, opts Options) *Service {
	if opts.UserIDCacheTTL <= 0 {
		opts.UserIDCacheTTL = DEFAULT_USER_ID_CACHE_TTL
	}
	if opts.DefaultSuggestionLimit <= 0 {
		opts.DefaultSuggestionLimit = DEFAULT_SUGGESTION_LIMIT
	}

	events := newNotifier(logger, publisher)
	identity := newIdentityService(logger, repo, opts.UserIDCacheTTL)

	return &Service{
		Identity:     identity,
		User:         newUserService(logger, repo),
		Social:       newSocialService(logger, repo, identity, events),
		Engagement:   newEngagementService(logger, repo, identity, events),
		Notification: newNotificationService(logger, repo, identity),
		Suggestion:   newSuggestionService(logger, repo, identity, opts.DefaultSuggestionLimit),
		System:       newSystemService(repo),
	}
}
