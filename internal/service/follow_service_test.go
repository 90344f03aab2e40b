package service

import (
	"context"
	"errors"
	"testing"

	"skillshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService_Follow(t *testing.T) {
	ctx := context.Background()
	notifications, store := newNotifications()
	follows := newFollowRepoStub()
	svc := NewFollowService(usersWithIDs(1, 2), follows, notifications)

	ok, err := svc.Follow(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	followers, err := svc.Followers(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, followers)

	following, err := svc.Following(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, following)

	require.Len(t, store.created, 1)
	n := store.created[0]
	assert.Equal(t, uint(1), n.RecipientID)
	assert.Equal(t, uint(2), n.SenderID)
	assert.Equal(t, models.NotificationFollow, n.Kind)
	assert.Equal(t, models.MessageFollowed, n.Message)
	assert.Nil(t, n.SubjectID)
}

func TestFollowService_FollowRejects(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		target   uint
		follower uint
	}{
		{"self follow", 1, 1},
		{"missing target", 9, 1},
		{"missing follower", 1, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifications, store := newNotifications()
			follows := newFollowRepoStub()
			svc := NewFollowService(usersWithIDs(1, 2), follows, notifications)

			ok, err := svc.Follow(ctx, tt.target, tt.follower)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, follows.edges)
			assert.Empty(t, store.created)
		})
	}
}

func TestFollowService_RepeatedFollowKeepsOneEdge(t *testing.T) {
	ctx := context.Background()
	notifications, _ := newNotifications()
	follows := newFollowRepoStub()
	svc := NewFollowService(usersWithIDs(1, 2), follows, notifications)

	for i := 0; i < 2; i++ {
		ok, err := svc.Follow(ctx, 1, 2)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	followers, _ := svc.Followers(ctx, 1)
	assert.Equal(t, []uint{2}, followers)
}

func TestFollowService_Unfollow(t *testing.T) {
	ctx := context.Background()
	notifications, store := newNotifications()
	follows := newFollowRepoStub()
	svc := NewFollowService(usersWithIDs(1, 2), follows, notifications)

	ok, err := svc.Unfollow(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, ok, "unfollow without a prior follow still succeeds")
	assert.Empty(t, follows.edges)

	_, err = svc.Follow(ctx, 1, 2)
	require.NoError(t, err)
	ok, err = svc.Unfollow(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, follows.edges)
	assert.Len(t, store.created, 1, "unfollow never notifies")

	ok, err = svc.Unfollow(ctx, 1, 9)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Unfollow(ctx, 1, 1)
	require.NoError(t, err)
	assert.True(t, ok, "self unfollow of an existing user succeeds")
	assert.Empty(t, follows.edges)
	assert.Len(t, store.created, 1)
}

func TestFollowService_PropagatesStoreErrors(t *testing.T) {
	ctx := context.Background()
	notifications, store := newNotifications()
	follows := newFollowRepoStub()
	follows.addErr = models.NewInternalError(errors.New("connection reset"))
	svc := NewFollowService(usersWithIDs(1, 2), follows, notifications)

	ok, err := svc.Follow(ctx, 1, 2)
	assert.False(t, ok)
	assertAppError(t, err, models.CodeInternal)
	assert.Empty(t, store.created)

	users := usersWithIDs()
	users.getByIDFn = func(_ context.Context, _ uint) (*models.User, error) {
		return nil, models.NewInternalError(errors.New("db down"))
	}
	svc = NewFollowService(users, newFollowRepoStub(), notifications)
	_, err = svc.Follow(ctx, 1, 2)
	assertAppError(t, err, models.CodeInternal)
}

func TestFollowService_UnknownUserHasNoFollowers(t *testing.T) {
	notifications, _ := newNotifications()
	svc := NewFollowService(usersWithIDs(), newFollowRepoStub(), notifications)

	followers, err := svc.Followers(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, followers)
}
