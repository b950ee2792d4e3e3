package models

import "time"

// Session statuses tracked by the presence registry.
const (
	StatusOnline  = "ONLINE"
	StatusOffline = "OFFLINE"
)

// Session is the in-memory record of a user's connection state. SocketID is
// the transport handle of the most recent connection; it is kept after the
// user goes OFFLINE so targeted emits can still use the last known route.
type Session struct {
	SocketID  string    `json:"socket_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Inbound event payloads.

// LoginPayload authenticates a connection for presence purposes.
type LoginPayload struct {
	UserID string `json:"user_id"`
}

// ChatPayload carries one chat message, optionally with a base64-encoded
// file attachment.
type ChatPayload struct {
	CurrentUserID string  `json:"current_user_id"`
	MessageUserID string  `json:"message_user_id"`
	Message       *string `json:"message"`
	File          string  `json:"file"`
	Filename      string  `json:"filename"`
	ContentType   string  `json:"content_type"`
}

// MarkSeenPayload asks for every unseen message from SenderID to the current
// user to be flagged seen.
type MarkSeenPayload struct {
	CurrentUserID string `json:"current_user_id"`
	SenderID      string `json:"sender_id"`
}

// LogoutPayload marks the user's session OFFLINE.
type LogoutPayload struct {
	UserID string `json:"user_id"`
}

// Outbound event payloads.

// JoinPayload is broadcast after every successful login and carries the full
// presence snapshot.
type JoinPayload struct {
	OnlineUsers map[string]Session `json:"online_users"`
}

// LeavePayload is broadcast on logout.
type LeavePayload struct {
	UserID string `json:"user_id"`
}

// ChatNotification is the lightweight targeted delivery sent to the
// recipient's connection alongside the broadcast chat event.
type ChatNotification struct {
	SenderID    string  `json:"sender_id"`
	RecipientID string  `json:"recipient_id"`
	Content     *string `json:"content"`
}

// SeenNotification is the targeted read-receipt sent to the original sender.
type SeenNotification struct {
	SenderID string `json:"sender_id"`
	ReaderID string `json:"reader_id"`
}
