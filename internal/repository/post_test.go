package repository

import (
	"context"
	"testing"
	"time"

	"skillshare/internal/cache"
	"skillshare/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{UserID: 1, Content: "first run", MediaURLs: []string{"abc_run.jpg"}}
	require.NoError(t, repo.Create(ctx, post))
	require.NotZero(t, post.ID)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "first run", got.Content)
	assert.Equal(t, []string{"abc_run.jpg"}, got.MediaURLs)
	assert.Empty(t, got.LikedUserIDs)

	got.Content = "edited"
	got.MediaURLs = nil
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)
	assert.Equal(t, []string{}, got.MediaURLs)

	require.NoError(t, repo.Delete(ctx, post.ID))
	_, err = repo.GetByID(ctx, post.ID)
	assert.True(t, models.IsNotFound(err))

	assert.True(t, models.IsNotFound(repo.Update(ctx, &models.Post{ID: post.ID, Content: "x"})))
}

func TestPostRepository_LikesAreASet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{UserID: 1, Content: "leg day"}
	require.NoError(t, repo.Create(ctx, post))

	added, err := repo.AddLike(ctx, post.ID, 7)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddLike(ctx, post.ID, 7)
	require.NoError(t, err)
	assert.False(t, added)

	_, err = repo.AddLike(ctx, post.ID, 8)
	require.NoError(t, err)

	ids, err := repo.LikedUserIDs(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{7, 8}, ids)

	require.NoError(t, repo.RemoveLike(ctx, post.ID, 7))
	require.NoError(t, repo.RemoveLike(ctx, post.ID, 7))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{8}, got.LikedUserIDs)
}

func TestPostRepository_ListNewestFirstWithLikes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	older := &models.Post{UserID: 1, Content: "older", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &models.Post{UserID: 2, Content: "newer"}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	_, err := repo.AddLike(ctx, older.ID, 2)
	require.NoError(t, err)

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "newer", posts[0].Content)
	assert.Equal(t, []uint{}, posts[0].LikedUserIDs)
	assert.Equal(t, []uint{2}, posts[1].LikedUserIDs)
}

func TestPostRepository_LikeInvalidatesCache(t *testing.T) {
	db := setupTestDB(t)
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{UserID: 1, Content: "cached"}
	require.NoError(t, repo.Create(ctx, post))

	_, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cache.PostKey(post.ID)))

	_, err = repo.AddLike(ctx, post.ID, 5)
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.PostKey(post.ID)))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{5}, got.LikedUserIDs)
}
