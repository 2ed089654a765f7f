package service

import (
	"context"
	"sync"
	"testing"

	"github.com/ElSheemy11/High-Up/internal/model"
	"github.com/ElSheemy11/High-Up/internal/repository"
	"github.com/ElSheemy11/High-Up/internal/repository/redisrepo"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type published struct {
	queue string
	data  []byte
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []published
}

func (p *fakePublisher) Publish(ctx context.Context, queue string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.messages = append(p.messages, published{queue: queue, data: data})
	return nil
}

func (p *fakePublisher) count(queue string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, m := range p.messages {
		if m.queue == queue {
			n++
		}
	}
	return n
}

type fixture struct {
	store     *memStore
	redis     *miniredis.Miniredis
	publisher *fakePublisher
	svc       *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	store := newMemStore()
	repo := &repository.Repository{
		Postgres: store.repository(),
		Redis:    redisrepo.New(rdb),
	}
	publisher := &fakePublisher{}

	return &fixture{
		store:     store,
		redis:     mr,
		publisher: publisher,
		svc:       New(zap.NewNop(), repo, publisher, Options{}),
	}
}

func strPtr(s string) *string {
	return &s
}

// signUp provisions a local user for externalID and returns it with its caller.
func (f *fixture) signUp(t *testing.T, externalID string, username string) (*model.User, model.Caller) {
	t.Helper()

	identity := &model.ExternalIdentity{
		ExternalID:     externalID,
		FirstName:      strPtr(username),
		Username:       strPtr(username),
		EmailAddresses: []string{username + "@example.com"},
	}
	user, err := f.svc.SyncIdentity(context.Background(), identity)
	require.NoError(t, err)
	require.NotNil(t, user)

	return user, identity.Caller()
}
