package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ElSheemy11/High-Up/internal/model"
	"github.com/ElSheemy11/High-Up/internal/rabbitmq"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func (f *fixture) post(t *testing.T, author model.Caller, content string) *model.Post {
	t.Helper()

	post, err := f.svc.CreatePost(context.Background(), author, content, nil)
	require.NoError(t, err)
	return post
}

func TestCreatePost(t *testing.T) {
	f := newFixture(t)
	u1, caller := f.signUp(t, "ext-1", "ada")
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, caller, "  hello  ", nil)
	require.NoError(t, err)
	require.Equal(t, u1.ID, post.AuthorID)
	require.Equal(t, "hello", post.Content)

	post, err = f.svc.CreatePost(ctx, caller, "", strPtr("https://img.example.com/1.png"))
	require.NoError(t, err)
	require.Empty(t, post.Content)

	_, err = f.svc.CreatePost(ctx, caller, "   ", strPtr(" "))
	require.ErrorIs(t, err, ErrEmptyPost)

	_, err = f.svc.CreatePost(ctx, model.Anonymous, "hello", nil)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestGetPosts_NewestFirst(t *testing.T) {
	f := newFixture(t)
	u1, caller := f.signUp(t, "ext-1", "ada")
	_, other := f.signUp(t, "ext-2", "grace")

	first := f.post(t, caller, "first")
	second := f.post(t, other, "second")
	third := f.post(t, caller, "third")

	posts, err := f.svc.GetPosts(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	require.Equal(t, third.ID, posts[0].ID)
	require.Equal(t, second.ID, posts[1].ID)
	require.Equal(t, first.ID, posts[2].ID)
	require.Equal(t, "ada", posts[0].Author.Username)

	posts, err = f.svc.GetUserPosts(context.Background(), u1.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
}

func TestToggleLike_OnOthersPost(t *testing.T) {
	f := newFixture(t)
	author, authorCaller := f.signUp(t, "ext-1", "ada")
	fan, fanCaller := f.signUp(t, "ext-2", "grace")
	post := f.post(t, authorCaller, "hello")
	ctx := context.Background()

	result, err := f.svc.ToggleLike(ctx, fanCaller, post.ID)
	require.NoError(t, err)
	require.True(t, result.Liked)

	notifications := f.store.notificationsFor(author.ID)
	require.Len(t, notifications, 1)
	require.Equal(t, model.NotificationLike, notifications[0].Type)
	require.Equal(t, fan.ID, notifications[0].CreatorID)
	require.Equal(t, post.ID, *notifications[0].PostID)
	require.Nil(t, notifications[0].CommentID)

	liked, err := f.svc.GetUserLikedPosts(ctx, fan.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	require.EqualValues(t, 1, liked[0].LikeCount)

	result, err = f.svc.ToggleLike(ctx, fanCaller, post.ID)
	require.NoError(t, err)
	require.False(t, result.Liked)
	require.Len(t, f.store.notificationsFor(author.ID), 1)
	require.Equal(t, 1, f.publisher.count(rabbitmq.LIKES_QUEUE))
}

func TestToggleLike_OwnPostDoesNotNotify(t *testing.T) {
	f := newFixture(t)
	author, caller := f.signUp(t, "ext-1", "ada")
	post := f.post(t, caller, "hello")

	result, err := f.svc.ToggleLike(context.Background(), caller, post.ID)
	require.NoError(t, err)
	require.True(t, result.Liked)
	require.Empty(t, f.store.notificationsFor(author.ID))
	require.Zero(t, f.publisher.count(rabbitmq.LIKES_QUEUE))
}

func TestToggleLike_Parity(t *testing.T) {
	f := newFixture(t)
	author, authorCaller := f.signUp(t, "ext-1", "ada")
	_, fanCaller := f.signUp(t, "ext-2", "grace")
	post := f.post(t, authorCaller, "hello")

	for i := 1; i <= 4; i++ {
		result, err := f.svc.ToggleLike(context.Background(), fanCaller, post.ID)
		require.NoError(t, err)
		require.Equal(t, i%2 == 1, result.Liked)
		require.Len(t, f.store.notificationsFor(author.ID), (i+1)/2)
	}

	require.Len(t, f.store.notificationsFor(author.ID), 2)
	require.Equal(t, 2, f.publisher.count(rabbitmq.LIKES_QUEUE))
}

func TestToggleLike_RollsBackWhenNotificationFails(t *testing.T) {
	f := newFixture(t)
	author, authorCaller := f.signUp(t, "ext-1", "ada")
	fan, fanCaller := f.signUp(t, "ext-2", "grace")
	post := f.post(t, authorCaller, "hello")
	f.store.failNotification = errors.New("disk full")

	_, err := f.svc.ToggleLike(context.Background(), fanCaller, post.ID)
	require.ErrorIs(t, err, ErrInternal)

	f.store.failNotification = nil
	liked, err := f.svc.GetUserLikedPosts(context.Background(), fan.ID, 10, 0)
	require.NoError(t, err)
	require.Empty(t, liked)
	require.Empty(t, f.store.notificationsFor(author.ID))
	require.Zero(t, f.publisher.count(rabbitmq.LIKES_QUEUE))

	result, err := f.svc.ToggleLike(context.Background(), fanCaller, post.ID)
	require.NoError(t, err)
	require.True(t, result.Liked)
	require.Len(t, f.store.notificationsFor(author.ID), 1)
}

func TestToggleLike_MissingPost(t *testing.T) {
	f := newFixture(t)
	_, caller := f.signUp(t, "ext-1", "ada")

	_, err := f.svc.ToggleLike(context.Background(), caller, uuid.New())
	require.ErrorIs(t, err, ErrPostNotFound)

	result, err := f.svc.ToggleLike(context.Background(), model.Anonymous, uuid.New())
	require.NoError(t, err)
	require.Nil(t, result)
}

func TestCreateComment(t *testing.T) {
	f := newFixture(t)
	author, authorCaller := f.signUp(t, "ext-1", "ada")
	_, fanCaller := f.signUp(t, "ext-2", "grace")
	post := f.post(t, authorCaller, "hello")
	ctx := context.Background()

	comment, err := f.svc.CreateComment(ctx, fanCaller, post.ID, "  nice post ")
	require.NoError(t, err)
	require.Equal(t, "nice post", comment.Content)

	notifications := f.store.notificationsFor(author.ID)
	require.Len(t, notifications, 1)
	require.Equal(t, model.NotificationComment, notifications[0].Type)
	require.Equal(t, post.ID, *notifications[0].PostID)
	require.Equal(t, comment.ID, *notifications[0].CommentID)

	_, err = f.svc.CreateComment(ctx, authorCaller, post.ID, "thanks")
	require.NoError(t, err)
	require.Len(t, f.store.notificationsFor(author.ID), 1)

	comments, err := f.svc.GetComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.Equal(t, "nice post", comments[0].Content)
	require.Equal(t, "grace", comments[0].Author.Username)
	require.Equal(t, "thanks", comments[1].Content)
}

func TestCreateComment_RejectsBlankText(t *testing.T) {
	f := newFixture(t)
	author, caller := f.signUp(t, "ext-1", "ada")
	_, fan := f.signUp(t, "ext-2", "grace")
	post := f.post(t, caller, "hello")

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := f.svc.CreateComment(context.Background(), fan, post.ID, text)
		require.ErrorIs(t, err, ErrEmptyComment)
	}

	comments, err := f.svc.GetComments(context.Background(), post.ID)
	require.NoError(t, err)
	require.Empty(t, comments)
	require.Empty(t, f.store.notificationsFor(author.ID))
}

func TestCreateComment_RollsBackWhenNotificationFails(t *testing.T) {
	f := newFixture(t)
	_, authorCaller := f.signUp(t, "ext-1", "ada")
	_, fan := f.signUp(t, "ext-2", "grace")
	post := f.post(t, authorCaller, "hello")
	f.store.failNotification = errors.New("disk full")

	_, err := f.svc.CreateComment(context.Background(), fan, post.ID, "nice")
	require.ErrorIs(t, err, ErrInternal)

	comments, err := f.svc.GetComments(context.Background(), post.ID)
	require.NoError(t, err)
	require.Empty(t, comments)
}

func TestDeletePost(t *testing.T) {
	f := newFixture(t)
	author, authorCaller := f.signUp(t, "ext-1", "ada")
	_, fan := f.signUp(t, "ext-2", "grace")
	post := f.post(t, authorCaller, "hello")
	ctx := context.Background()

	_, err := f.svc.ToggleLike(ctx, fan, post.ID)
	require.NoError(t, err)
	_, err = f.svc.CreateComment(ctx, fan, post.ID, "nice")
	require.NoError(t, err)

	require.ErrorIs(t, f.svc.DeletePost(ctx, fan, post.ID), ErrForbidden)
	require.ErrorIs(t, f.svc.DeletePost(ctx, model.Anonymous, post.ID), ErrForbidden)

	posts, err := f.svc.GetPosts(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.EqualValues(t, 1, posts[0].LikeCount)
	require.EqualValues(t, 1, posts[0].CommentCount)

	require.NoError(t, f.svc.DeletePost(ctx, authorCaller, post.ID))

	posts, err = f.svc.GetPosts(ctx, 10, 0)
	require.NoError(t, err)
	require.Empty(t, posts)

	comments, err := f.svc.GetComments(ctx, post.ID)
	require.NoError(t, err)
	require.Empty(t, comments)

	// Notifications outlive the post they point at.
	require.Len(t, f.store.notificationsFor(author.ID), 2)

	require.ErrorIs(t, f.svc.DeletePost(ctx, authorCaller, post.ID), ErrPostNotFound)
}
