package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ElSheemy11/High-Up/internal/model"
	"github.com/ElSheemy11/High-Up/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type pair [2]uuid.UUID

// memStore mirrors the postgres repositories closely enough for service tests:
// same sentinel errors, same constraint names, rollback on failed transactions.
type memStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	clock time.Time

	users         map[uuid.UUID]model.User
	follows       map[pair]model.Follow
	posts         map[uuid.UUID]model.Post
	likes         map[pair]model.Like
	comments      map[uuid.UUID]model.Comment
	notifications []model.Notification

	failNotification error
	failQueries      error
	lookupMisses     int
}

func newMemStore() *memStore {
	return &memStore{
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:    map[uuid.UUID]model.User{},
		follows:  map[pair]model.Follow{},
		posts:    map[uuid.UUID]model.Post{},
		likes:    map[pair]model.Like{},
		comments: map[uuid.UUID]model.Comment{},
	}
}

func (s *memStore) repository() *postgres.PostgresRepository {
	return &postgres.PostgresRepository{
		Transactor:   memTx{s},
		User:         memUsers{s},
		Follow:       memFollows{s},
		Post:         memPosts{s},
		Like:         memLikes{s},
		Comment:      memComments{s},
		Notification: memNotifications{s},
	}
}

func (s *memStore) now() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

type memSnapshot struct {
	users         map[uuid.UUID]model.User
	follows       map[pair]model.Follow
	posts         map[uuid.UUID]model.Post
	likes         map[pair]model.Like
	comments      map[uuid.UUID]model.Comment
	notifications []model.Notification
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return memSnapshot{
		users:         cloneMap(s.users),
		follows:       cloneMap(s.follows),
		posts:         cloneMap(s.posts),
		likes:         cloneMap(s.likes),
		comments:      cloneMap(s.comments),
		notifications: append([]model.Notification(nil), s.notifications...),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = snap.users
	s.follows = snap.follows
	s.posts = snap.posts
	s.likes = snap.likes
	s.comments = snap.comments
	s.notifications = snap.notifications
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) notificationsFor(userID uuid.UUID) []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (s *memStore) countUsers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *memStore) summary(id uuid.UUID) model.UserSummary {
	u := s.users[id]
	return model.UserSummary{ID: u.ID, Name: u.Name, Username: u.Username, ImageURL: u.ImageURL}
}

type memTx struct{ s *memStore }

func (t memTx) WithinTx(ctx context.Context, fn func(tx *postgres.PostgresRepository) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	snap := t.s.snapshot()
	if err := fn(t.s.repository()); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(ctx context.Context, user model.User) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.ExternalID == user.ExternalID {
			return nil, &postgres.ConflictError{Constraint: postgres.ConstraintUsersExternalID}
		}
		if u.Username == user.Username {
			return nil, &postgres.ConflictError{Constraint: postgres.ConstraintUsersUsername}
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = r.s.now()
	user.UpdatedAt = user.CreatedAt
	r.s.users[user.ID] = user
	return &user, nil
}

func (r memUsers) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (r memUsers) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.failQueries != nil {
		return nil, r.s.failQueries
	}
	if r.s.lookupMisses > 0 {
		r.s.lookupMisses--
		return nil, pgx.ErrNoRows
	}

	for _, u := range r.s.users {
		if u.ExternalID == externalID {
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r memUsers) full(u model.User) *model.FullUser {
	full := &model.FullUser{User: u}
	for key := range r.s.follows {
		if key[1] == u.ID {
			full.FollowerCount++
		}
		if key[0] == u.ID {
			full.FollowingCount++
		}
	}
	for _, p := range r.s.posts {
		if p.AuthorID == u.ID {
			full.PostCount++
		}
	}
	return full
}

func (r memUsers) FindFullByID(ctx context.Context, id uuid.UUID) (*model.FullUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return r.full(u), nil
}

func (r memUsers) FindFullByUsername(ctx context.Context, username string) (*model.FullUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == username {
			return r.full(u), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r memUsers) FindSuggestions(ctx context.Context, userID uuid.UUID, limit int) ([]*model.SuggestedUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.failQueries != nil {
		return nil, r.s.failQueries
	}

	users := []*model.SuggestedUser{}
	for _, u := range r.s.users {
		if len(users) == limit {
			break
		}
		if u.ID == userID {
			continue
		}
		if _, followed := r.s.follows[pair{userID, u.ID}]; followed {
			continue
		}
		users = append(users, &model.SuggestedUser{
			ID:            u.ID,
			Name:          u.Name,
			Username:      u.Username,
			ImageURL:      u.ImageURL,
			FollowerCount: r.full(u).FollowerCount,
		})
	}
	return users, nil
}

type memFollows struct{ s *memStore }

func (r memFollows) Exists(ctx context.Context, followerID uuid.UUID, followingID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, ok := r.s.follows[pair{followerID, followingID}]
	return ok, nil
}

func (r memFollows) Create(ctx context.Context, follow model.Follow) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[follow.FollowingID]; !ok {
		return fmt.Errorf("%w: follows_following_id_fkey", postgres.ErrMissingReference)
	}
	key := pair{follow.FollowerID, follow.FollowingID}
	if _, ok := r.s.follows[key]; ok {
		return &postgres.ConflictError{Constraint: postgres.ConstraintFollowsPkey}
	}

	follow.CreatedAt = r.s.now()
	r.s.follows[key] = follow
	return nil
}

func (r memFollows) Delete(ctx context.Context, followerID uuid.UUID, followingID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pair{followerID, followingID}
	_, ok := r.s.follows[key]
	delete(r.s.follows, key)
	return ok, nil
}

type memPosts struct{ s *memStore }

func (r memPosts) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	post.ID = uuid.New()
	post.CreatedAt = r.s.now()
	post.UpdatedAt = post.CreatedAt
	r.s.posts[post.ID] = post
	return &post, nil
}

func (r memPosts) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &p, nil
}

func (r memPosts) collect(match func(model.Post) bool, limit int, offset int) []*model.FullPost {
	posts := []*model.FullPost{}
	for _, p := range r.s.posts {
		if !match(p) {
			continue
		}
		full := &model.FullPost{Post: p, Author: r.s.summary(p.AuthorID)}
		for key := range r.s.likes {
			if key[1] == p.ID {
				full.LikeCount++
			}
		}
		for _, c := range r.s.comments {
			if c.PostID == p.ID {
				full.CommentCount++
			}
		}
		posts = append(posts, full)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })

	if offset >= len(posts) {
		return []*model.FullPost{}
	}
	posts = posts[offset:]
	if limit > 0 && limit < len(posts) {
		posts = posts[:limit]
	}
	return posts
}

func (r memPosts) FindAll(ctx context.Context, limit int, offset int) ([]*model.FullPost, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.collect(func(model.Post) bool { return true }, limit, offset), nil
}

func (r memPosts) FindByAuthorID(ctx context.Context, authorID uuid.UUID, limit int, offset int) ([]*model.FullPost, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.collect(func(p model.Post) bool { return p.AuthorID == authorID }, limit, offset), nil
}

func (r memPosts) FindLikedByUserID(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullPost, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.collect(func(p model.Post) bool {
		_, liked := r.s.likes[pair{userID, p.ID}]
		return liked
	}, limit, offset), nil
}

func (r memPosts) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.posts, id)
	return nil
}

type memLikes struct{ s *memStore }

func (r memLikes) Exists(ctx context.Context, userID uuid.UUID, postID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, ok := r.s.likes[pair{userID, postID}]
	return ok, nil
}

func (r memLikes) Create(ctx context.Context, like model.Like) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[like.PostID]; !ok {
		return fmt.Errorf("%w: likes_post_id_fkey", postgres.ErrMissingReference)
	}
	key := pair{like.UserID, like.PostID}
	if _, ok := r.s.likes[key]; ok {
		return &postgres.ConflictError{Constraint: postgres.ConstraintLikesPkey}
	}

	like.CreatedAt = r.s.now()
	r.s.likes[key] = like
	return nil
}

func (r memLikes) Delete(ctx context.Context, userID uuid.UUID, postID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pair{userID, postID}
	_, ok := r.s.likes[key]
	delete(r.s.likes, key)
	return ok, nil
}

func (r memLikes) DeleteByPostID(ctx context.Context, postID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for key := range r.s.likes {
		if key[1] == postID {
			delete(r.s.likes, key)
		}
	}
	return nil
}

type memComments struct{ s *memStore }

func (r memComments) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[comment.PostID]; !ok {
		return nil, fmt.Errorf("%w: comments_post_id_fkey", postgres.ErrMissingReference)
	}

	comment.ID = uuid.New()
	comment.CreatedAt = r.s.now()
	r.s.comments[comment.ID] = comment
	return &comment, nil
}

func (r memComments) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*model.FullComment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	comments := []*model.FullComment{}
	for _, c := range r.s.comments {
		if c.PostID == postID {
			comments = append(comments, &model.FullComment{Comment: c, Author: r.s.summary(c.AuthorID)})
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].CreatedAt.Before(comments[j].CreatedAt) })
	return comments, nil
}

func (r memComments) DeleteByPostID(ctx context.Context, postID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, c := range r.s.comments {
		if c.PostID == postID {
			delete(r.s.comments, id)
		}
	}
	return nil
}

type memNotifications struct{ s *memStore }

func (r memNotifications) Create(ctx context.Context, notification model.Notification) (*model.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.failNotification != nil {
		return nil, r.s.failNotification
	}

	notification.ID = uuid.New()
	notification.CreatedAt = r.s.now()
	r.s.notifications = append(r.s.notifications, notification)
	return &notification, nil
}

func (r memNotifications) FindByUserID(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullNotification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	notifications := []*model.FullNotification{}
	for i := len(r.s.notifications) - 1; i >= 0; i-- {
		n := r.s.notifications[i]
		if n.UserID == userID {
			notifications = append(notifications, &model.FullNotification{Notification: n, Creator: r.s.summary(n.CreatorID)})
		}
	}

	if offset >= len(notifications) {
		return []*model.FullNotification{}, nil
	}
	notifications = notifications[offset:]
	if limit > 0 && limit < len(notifications) {
		notifications = notifications[:limit]
	}
	return notifications, nil
}
