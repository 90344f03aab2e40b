package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"skillshare/internal/models"
	"skillshare/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostService() (*PostService, *postRepoStub, *storage.MemoryStore, *notificationRepoStub) {
	posts := newPostRepoStub()
	media := storage.NewMemoryStore()
	notifications, store := newNotifications()
	return NewPostService(posts, media, notifications), posts, media, store
}

func upload(name, body string) *MediaUpload {
	return &MediaUpload{Filename: name, Content: strings.NewReader(body)}
}

func TestPostService_CreatePost(t *testing.T) {
	ctx := context.Background()
	svc, _, media, _ := newPostService()

	post, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, []string{}, post.MediaURLs)

	post, err = svc.CreatePost(ctx, CreatePostInput{UserID: 1, Content: "pic", Media: upload("run.jpg", "img")})
	require.NoError(t, err)
	require.Len(t, post.MediaURLs, 1)
	assert.True(t, strings.HasSuffix(post.MediaURLs[0], "_run.jpg"))
	assert.True(t, media.Has(post.MediaURLs[0]))

	_, err = svc.CreatePost(ctx, CreatePostInput{Content: "anon"})
	assertAppError(t, err, models.CodeValidation)
}

func TestPostService_CreatePostRemovesMediaOnFailure(t *testing.T) {
	svc, posts, media, _ := newPostService()
	posts.createFn = func(context.Context, *models.Post) error {
		return models.NewInternalError(errors.New("insert failed"))
	}

	_, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 1, Media: upload("a.png", "x")})
	assertAppError(t, err, models.CodeInternal)
	assert.Zero(t, media.Len())
}

func TestPostService_UpdatePostReplacesMedia(t *testing.T) {
	ctx := context.Background()
	svc, _, media, _ := newPostService()

	post, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Content: "v1", Media: upload("old.jpg", "old")})
	require.NoError(t, err)
	oldName := post.MediaURLs[0]

	updated, err := svc.UpdatePost(ctx, UpdatePostInput{PostID: post.ID, Content: "v2", Media: upload("new.jpg", "new")})
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Content)
	require.Len(t, updated.MediaURLs, 1)
	assert.NotEqual(t, oldName, updated.MediaURLs[0])
	assert.False(t, media.Has(oldName))
	assert.Equal(t, 1, media.Len())

	kept, err := svc.UpdatePost(ctx, UpdatePostInput{PostID: post.ID, Content: "v3"})
	require.NoError(t, err)
	assert.Equal(t, updated.MediaURLs, kept.MediaURLs)

	_, err = svc.UpdatePost(ctx, UpdatePostInput{PostID: 404, Content: "x"})
	assertAppError(t, err, models.CodeNotFound)
}

func TestPostService_DeletePostRemovesMedia(t *testing.T) {
	ctx := context.Background()
	svc, _, media, _ := newPostService()

	post, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Media: upload("a.jpg", "a")})
	require.NoError(t, err)
	require.Equal(t, 1, media.Len())

	require.NoError(t, svc.DeletePost(ctx, post.ID))
	assert.Zero(t, media.Len())

	_, err = svc.GetPost(ctx, post.ID)
	assertAppError(t, err, models.CodeNotFound)

	assert.NoError(t, svc.DeletePost(ctx, post.ID), "deleting a missing post is a no-op")
}

func TestPostService_LikeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _, _, notifications := newPostService()

	post, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Content: "pr"})
	require.NoError(t, err)

	require.NoError(t, svc.LikePost(ctx, post.ID, 2))
	require.NoError(t, svc.LikePost(ctx, post.ID, 2))

	got, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, got.LikedUserIDs)

	require.Len(t, notifications.created, 1)
	n := notifications.created[0]
	assert.Equal(t, uint(1), n.RecipientID)
	assert.Equal(t, uint(2), n.SenderID)
	assert.Equal(t, models.NotificationLike, n.Kind)
	require.NotNil(t, n.SubjectID)
	assert.Equal(t, post.ID, *n.SubjectID)
}

func TestPostService_SelfLikeDoesNotNotify(t *testing.T) {
	ctx := context.Background()
	svc, _, _, notifications := newPostService()

	post, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1})
	require.NoError(t, err)

	require.NoError(t, svc.LikePost(ctx, post.ID, 1))
	got, _ := svc.GetPost(ctx, post.ID)
	assert.Equal(t, []uint{1}, got.LikedUserIDs)
	assert.Empty(t, notifications.created)
}

func TestPostService_Unlike(t *testing.T) {
	ctx := context.Background()
	svc, _, _, notifications := newPostService()

	post, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1})
	require.NoError(t, err)
	require.NoError(t, svc.LikePost(ctx, post.ID, 2))
	require.NoError(t, svc.UnlikePost(ctx, post.ID, 2))
	require.NoError(t, svc.UnlikePost(ctx, post.ID, 2))

	got, _ := svc.GetPost(ctx, post.ID)
	assert.Empty(t, got.LikedUserIDs)
	assert.Len(t, notifications.created, 1)
}

func TestPostService_LikeMissingPostIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, posts, _, notifications := newPostService()

	assert.NoError(t, svc.LikePost(ctx, 99, 2))
	assert.NoError(t, svc.UnlikePost(ctx, 99, 2))
	assert.Empty(t, posts.likes)
	assert.Empty(t, notifications.created)

	posts.getErr = models.NewInternalError(errors.New("timeout"))
	assertAppError(t, svc.LikePost(ctx, 1, 2), models.CodeInternal)
}
