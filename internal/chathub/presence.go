package chathub

import (
	"sync"
	"time"

	"matchpoint/backend/internal/models"
)

// Registry is the process-wide presence map from user ID to session. It is
// the only shared mutable structure in the hub; every access goes through
// the mutex and no caller holds it across I/O.
//
// Entries are never deleted. Logout flips the status to OFFLINE but keeps
// the last socket ID so targeted emits can use the last known route.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

// NewRegistry creates an empty presence registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]models.Session)}
}

// Upsert records the user as ONLINE on the given socket. A reconnect
// overwrites the previous socket ID (last write wins, no multi-device
// fan-out). Idempotent for repeated calls with the same socket.
func (r *Registry) Upsert(userID, socketID string) models.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess := models.Session{
		SocketID:  socketID,
		Status:    models.StatusOnline,
		Timestamp: time.Now(),
	}
	r.sessions[userID] = sess
	return sess
}

// MarkOffline sets the user's status to OFFLINE, keeping the stale socket
// ID. No-op if the user has never logged in.
func (r *Registry) MarkOffline(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[userID]
	if !ok {
		return
	}
	sess.Status = models.StatusOffline
	sess.Timestamp = time.Now()
	r.sessions[userID] = sess
}

// Lookup returns the user's session, if any.
func (r *Registry) Lookup(userID string) (models.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.sessions[userID]
	return sess, ok
}

// Snapshot returns a point-in-time copy of every session. The copy is safe
// to serialize while other connections keep mutating the registry.
func (r *Registry) Snapshot() map[string]models.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]models.Session, len(r.sessions))
	for id, sess := range r.sessions {
		out[id] = sess
	}
	return out
}
