package chathub

import (
	"go.uber.org/zap"
)

type directEmit struct {
	socketID string
	event    Event
}

// Hub owns the set of live connections, keyed by socket ID. All map access
// happens inside Run, so registration, broadcast and targeted emits are
// serialized through channels and never race.
type Hub struct {
	// Clients is owned by the Run goroutine. Exposed for tests.
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client

	broadcastCh chan Event
	directCh    chan directEmit

	log *zap.Logger
}

// NewHub creates a hub. Run must be started before any client registers.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		broadcastCh:  make(chan Event, 64),
		directCh:     make(chan directEmit, 64),
		log:          log,
	}
}

// Run is the hub dispatch loop. It never returns.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.RegisterCh:
			h.Clients[c.GetSocketID()] = c
			h.log.Debug("client registered",
				zap.String("socket_id", c.GetSocketID()),
				zap.Int("connections", len(h.Clients)))

		case c := <-h.UnregisterCh:
			h.remove(c.GetSocketID())

		case e := <-h.broadcastCh:
			for id, c := range h.Clients {
				h.trySend(id, c, e)
			}

		case d := <-h.directCh:
			// Emits to stale or unknown socket IDs are dropped; the
			// durable read path covers missed deliveries.
			if c, ok := h.Clients[d.socketID]; ok {
				h.trySend(d.socketID, c, d.event)
			}
		}
	}
}

// Broadcast queues an event for every connected client.
func (h *Hub) Broadcast(e Event) {
	h.broadcastCh <- e
}

// EmitTo queues an event for one specific connection handle.
func (h *Hub) EmitTo(socketID string, e Event) {
	h.directCh <- directEmit{socketID: socketID, event: e}
}

// Unregister removes the client from the hub and closes its send side.
// Safe to call for a client that was already evicted.
func (h *Hub) Unregister(c Client) {
	h.UnregisterCh <- c
}

func (h *Hub) remove(socketID string) {
	c, ok := h.Clients[socketID]
	if !ok {
		return
	}
	delete(h.Clients, socketID)
	c.Close()
	h.log.Debug("client unregistered", zap.String("socket_id", socketID))
}

// trySend delivers without blocking the dispatch loop. A client whose send
// buffer is full is considered dead and evicted.
func (h *Hub) trySend(socketID string, c Client, e Event) {
	select {
	case c.GetSendChannel() <- e:
	default:
		h.log.Warn("send buffer full, evicting client",
			zap.String("socket_id", socketID),
			zap.String("event", e.Name))
		h.remove(socketID)
	}
}
