package repository

import (
	"context"
	"testing"
	"time"

	"skillshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_ListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()
	postID := uint(5)

	base := time.Now().Add(-time.Hour)
	records := []*models.Notification{
		{RecipientID: 1, SenderID: 2, Kind: models.NotificationFollow, Message: models.MessageFollowed, CreatedAt: base},
		{RecipientID: 1, SenderID: 3, Kind: models.NotificationLike, SubjectID: &postID, Message: models.MessageLiked, CreatedAt: base.Add(time.Minute)},
		{RecipientID: 2, SenderID: 1, Kind: models.NotificationComment, SubjectID: &postID, Message: models.MessageCommented, CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, n := range records {
		require.NoError(t, repo.Create(ctx, n))
	}

	list, err := repo.ListByRecipient(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.NotificationLike, list[0].Kind)
	require.NotNil(t, list[0].SubjectID)
	assert.Equal(t, postID, *list[0].SubjectID)
	assert.Equal(t, models.NotificationFollow, list[1].Kind)
	assert.Nil(t, list[1].SubjectID)

	require.NoError(t, repo.Delete(ctx, list[0].ID))
	_, err = repo.GetByID(ctx, list[0].ID)
	assert.True(t, models.IsNotFound(err))

	none, err := repo.ListByRecipient(ctx, 77)
	require.NoError(t, err)
	assert.Empty(t, none)
}
