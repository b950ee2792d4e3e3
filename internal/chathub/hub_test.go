package chathub_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"matchpoint/backend/internal/chathub"
)

func startHub() *chathub.Hub {
	hub := chathub.NewHub(zap.NewNop())
	go hub.Run()
	return hub
}

func TestHubRegisterAndUnregister(t *testing.T) {
	hub := startHub()
	client := newMockClient("sock-1", "user-1")

	hub.RegisterCh <- client
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, hub.Clients, 1)
	assert.Equal(t, client, hub.Clients["sock-1"])

	hub.Unregister(client)
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, hub.Clients)

	// The send channel is closed exactly once on removal.
	_, open := <-client.Recv
	assert.False(t, open)
}

func TestHubUnregisterTwiceIsSafe(t *testing.T) {
	hub := startHub()
	client := newMockClient("sock-1", "user-1")

	hub.RegisterCh <- client
	time.Sleep(50 * time.Millisecond)

	hub.Unregister(client)
	hub.Unregister(client)
	time.Sleep(50 * time.Millisecond)

	assert.Empty(t, hub.Clients)
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub := startHub()
	a := newMockClient("sock-a", "user-a")
	b := newMockClient("sock-b", "user-b")

	hub.RegisterCh <- a
	hub.RegisterCh <- b
	time.Sleep(50 * time.Millisecond)

	hub.Broadcast(chathub.Event{Name: chathub.EventLeave})
	time.Sleep(50 * time.Millisecond)

	assert.Len(t, a.drain(), 1)
	assert.Len(t, b.drain(), 1)
}

func TestHubEmitToTargetsOneClient(t *testing.T) {
	hub := startHub()
	a := newMockClient("sock-a", "user-a")
	b := newMockClient("sock-b", "user-b")

	hub.RegisterCh <- a
	hub.RegisterCh <- b
	time.Sleep(50 * time.Millisecond)

	hub.EmitTo("sock-b", chathub.Event{Name: chathub.EventMessageSeen})
	time.Sleep(50 * time.Millisecond)

	assert.Empty(t, a.drain())

	got := b.drain()
	assert.Len(t, got, 1)
	assert.Equal(t, chathub.EventMessageSeen, got[0].Name)
}

func TestHubEmitToUnknownSocketIsDropped(t *testing.T) {
	hub := startHub()
	a := newMockClient("sock-a", "user-a")

	hub.RegisterCh <- a
	time.Sleep(50 * time.Millisecond)

	hub.EmitTo("sock-gone", chathub.Event{Name: chathub.EventChatMessage})
	time.Sleep(50 * time.Millisecond)

	assert.Empty(t, a.drain())
	assert.Len(t, hub.Clients, 1)
}

func TestHubEvictsClientWithFullBuffer(t *testing.T) {
	hub := startHub()
	slow := newSlowClient("sock-slow", "user-slow")
	fast := newMockClient("sock-fast", "user-fast")

	hub.RegisterCh <- slow
	hub.RegisterCh <- fast
	time.Sleep(50 * time.Millisecond)

	hub.Broadcast(chathub.Event{Name: chathub.EventJoin})
	time.Sleep(50 * time.Millisecond)

	assert.Len(t, hub.Clients, 1)
	assert.NotContains(t, hub.Clients, "sock-slow")
	assert.Len(t, fast.drain(), 1)
}
