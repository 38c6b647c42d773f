package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"jobni/internal/domain/conversation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_DeliversOnlyToTopic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	roomA, roomB := uuid.New(), uuid.New()
	a := &Client{hub: hub, topic: roomA, send: make(chan []byte, 4)}
	b := &Client{hub: hub, topic: roomB, send: make(chan []byte, 4)}
	hub.Register(a)
	hub.Register(b)

	require.Eventually(t, func() bool { return hub.Watchers(roomA) == 1 && hub.Watchers(roomB) == 1 }, time.Second, 5*time.Millisecond)

	hub.Deliver(roomA, []byte("hello"))

	select {
	case got := <-a.send:
		assert.Equal(t, "hello", string(got))
	case <-time.After(time.Second):
		t.Fatal("watcher of roomA got nothing")
	}
	select {
	case got := <-b.send:
		t.Fatalf("watcher of roomB got %q", got)
	case <-time.After(50 * time.Millisecond):
	}

	hub.Unregister(a)
	require.Eventually(t, func() bool { return hub.Watchers(roomA) == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-a.send
	assert.False(t, open)
}

func TestEncodeMessagePosted(t *testing.T) {
	sender := uuid.New()
	m := conversation.Message{
		ID:             uuid.New(),
		ConversationID: uuid.New(),
		SenderID:       &sender,
		Text:           "see you at 9",
		CreatedAt:      time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	b, err := EncodeMessagePosted(m)
	require.NoError(t, err)

	var evt MessagePostedEvent
	require.NoError(t, json.Unmarshal(b, &evt))
	assert.Equal(t, EventMessagePosted, evt.Type)
	assert.Equal(t, m.ConversationID.String(), evt.ConversationID)
	assert.Equal(t, "see you at 9", evt.Message.MessageText)
	require.NotNil(t, evt.Message.SenderID)
	assert.Equal(t, sender.String(), *evt.Message.SenderID)
	assert.False(t, evt.Message.IsSystem)
}
