package chathub

import "encoding/json"

// Inbound event names.
const (
	EventLogin    = "login"
	EventChat     = "chat"
	EventMarkSeen = "mark_messages_seen"
	EventLogout   = "logout"
)

// Outbound event names.
const (
	EventJoin        = "join"
	EventLeave       = "leave"
	EventChatBcast   = "chat"
	EventChatMessage = "chat_message"
	EventMessageSeen = "message_seen"
)

// Event is the wire envelope for outbound traffic: {"event": ..., "data": ...}.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data,omitempty"`
}

// inboundEvent defers payload decoding until the event name is known.
type inboundEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}
