package notifications

import (
	"context"
	"encoding/json"
	"testing"

	"skillshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastReachesEveryUserSocket(t *testing.T) {
	hub := NewHub()

	a, err := hub.Register(7, nil)
	require.NoError(t, err)
	b, err := hub.Register(7, nil)
	require.NoError(t, err)
	other, err := hub.Register(8, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, hub.Connections(7))

	hub.Broadcast(7, []byte("hi"))

	assert.Equal(t, "hi", string(<-a.Send))
	assert.Equal(t, "hi", string(<-b.Send))
	assert.Empty(t, other.Send)
}

func TestHub_UnregisterIsIdempotent(t *testing.T) {
	hub := NewHub()
	c, err := hub.Register(3, nil)
	require.NoError(t, err)

	hub.UnregisterClient(c)
	hub.UnregisterClient(c)
	assert.Zero(t, hub.Connections(3))

	_, open := <-c.Send
	assert.False(t, open)

	// Broadcasting to a user with no sockets is a no-op.
	hub.Broadcast(3, []byte("late"))
}

func TestHub_PerUserLimit(t *testing.T) {
	hub := NewHub()
	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register(1, nil)
		require.NoError(t, err)
	}
	_, err := hub.Register(1, nil)
	assert.ErrorIs(t, err, ErrUserFull)

	_, err = hub.Register(2, nil)
	assert.NoError(t, err)
}

func TestHub_PublishEncodesNotification(t *testing.T) {
	hub := NewHub()
	c, err := hub.Register(5, nil)
	require.NoError(t, err)
	postID := uint(11)

	n := &models.Notification{ID: 1, RecipientID: 5, SenderID: 6, Kind: models.NotificationLike, SubjectID: &postID, Message: models.MessageLiked}
	require.NoError(t, hub.Publish(context.Background(), n))

	var got map[string]any
	require.NoError(t, json.Unmarshal(<-c.Send, &got))
	assert.Equal(t, "like", got["type"])
	assert.EqualValues(t, 5, got["userId"])
	assert.EqualValues(t, 11, got["postId"])
}

func TestHub_ShutdownRejectsNewConnections(t *testing.T) {
	hub := NewHub()
	c, err := hub.Register(1, nil)
	require.NoError(t, err)

	require.NoError(t, hub.Shutdown(context.Background()))
	_, open := <-c.Send
	assert.False(t, open)

	_, err = hub.Register(1, nil)
	assert.ErrorIs(t, err, ErrServerFull)
}

func TestClient_TrySendDropsWhenFull(t *testing.T) {
	hub := NewHub()
	c, err := hub.Register(1, nil)
	require.NoError(t, err)

	for i := 0; i < sendBuffer+5; i++ {
		c.TrySend([]byte("x"))
	}
	assert.Len(t, c.Send, sendBuffer)

	hub.UnregisterClient(c)
	assert.NotPanics(t, func() { c.TrySend([]byte("after close")) })
}
