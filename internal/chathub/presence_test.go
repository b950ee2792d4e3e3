package chathub_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"matchpoint/backend/internal/chathub"
	"matchpoint/backend/internal/models"
)

func TestRegistryUpsertMarksOnline(t *testing.T) {
	reg := chathub.NewRegistry()

	sess := reg.Upsert("user-1", "sock-1")

	assert.Equal(t, "sock-1", sess.SocketID)
	assert.Equal(t, models.StatusOnline, sess.Status)
	assert.False(t, sess.Timestamp.IsZero())

	got, ok := reg.Lookup("user-1")
	assert.True(t, ok)
	assert.Equal(t, sess, got)
}

func TestRegistryReconnectLastWriteWins(t *testing.T) {
	reg := chathub.NewRegistry()

	reg.Upsert("user-1", "sock-old")
	reg.Upsert("user-1", "sock-new")

	got, ok := reg.Lookup("user-1")
	assert.True(t, ok)
	assert.Equal(t, "sock-new", got.SocketID)
	assert.Equal(t, models.StatusOnline, got.Status)

	// Only one entry survives a reconnect.
	assert.Len(t, reg.Snapshot(), 1)
}

func TestRegistryMarkOfflineKeepsSocket(t *testing.T) {
	reg := chathub.NewRegistry()

	reg.Upsert("user-1", "sock-1")
	reg.MarkOffline("user-1")

	got, ok := reg.Lookup("user-1")
	assert.True(t, ok)
	assert.Equal(t, models.StatusOffline, got.Status)
	assert.Equal(t, "sock-1", got.SocketID, "last known socket must survive logout")
}

func TestRegistryMarkOfflineUnknownUserIsNoop(t *testing.T) {
	reg := chathub.NewRegistry()

	reg.MarkOffline("nobody")

	_, ok := reg.Lookup("nobody")
	assert.False(t, ok)
	assert.Empty(t, reg.Snapshot())
}

func TestRegistrySnapshotIsACopy(t *testing.T) {
	reg := chathub.NewRegistry()
	reg.Upsert("user-1", "sock-1")

	snap := reg.Snapshot()
	reg.Upsert("user-1", "sock-2")
	reg.Upsert("user-2", "sock-3")

	assert.Len(t, snap, 1)
	assert.Equal(t, "sock-1", snap["user-1"].SocketID)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	reg := chathub.NewRegistry()

	const writers = 8
	const iterations = 200

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", w)
			for i := 0; i < iterations; i++ {
				reg.Upsert(userID, fmt.Sprintf("sock-%d-%d", w, i))
				if i%3 == 0 {
					reg.MarkOffline(userID)
				}
			}
		}(w)
	}

	// Readers race the writers; every observed session must be internally
	// consistent (a real status and a non-empty socket).
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			for _, sess := range reg.Snapshot() {
				assert.NotEmpty(t, sess.SocketID)
				assert.Contains(t, []string{models.StatusOnline, models.StatusOffline}, sess.Status)
			}
		}
	}()
	wg.Wait()

	assert.Len(t, reg.Snapshot(), writers)
}
