package chathub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"matchpoint/backend/internal/models"
	"matchpoint/backend/internal/storage"
	"matchpoint/backend/internal/upload"
)

// ErrUnauthenticated is returned when a login event carries no user_id. The
// read pump closes the connection on it; there is no retry.
var ErrUnauthenticated = errors.New("login event missing user_id")

const defaultOpTimeout = 5 * time.Second

// Router is the protocol state machine. It processes one inbound event at a
// time per connection (the read pump calls Dispatch inline), validates chat
// events against the match store, persists messages and emits the resulting
// events through the hub.
type Router struct {
	Hub      *Hub
	Presence *Registry
	Store    storage.Store
	Uploader upload.Uploader

	// OpTimeout bounds every storage and upload call made while handling a
	// single event, so a stalled collaborator cannot block the connection's
	// event queue indefinitely.
	OpTimeout time.Duration

	// OfflineOnDisconnect opts into marking the session OFFLINE when the
	// transport drops. Off by default: only an explicit logout changes
	// presence, so a crashed client stays ONLINE until it logs out.
	OfflineOnDisconnect bool

	log *zap.Logger
}

// NewRouter wires the protocol state machine to its collaborators.
func NewRouter(hub *Hub, presence *Registry, store storage.Store, uploader upload.Uploader, log *zap.Logger) *Router {
	return &Router{
		Hub:       hub,
		Presence:  presence,
		Store:     store,
		Uploader:  uploader,
		OpTimeout: defaultOpTimeout,
		log:       log,
	}
}

// Dispatch handles one inbound frame. A non-nil error means the connection
// must be closed; every other failure is logged and swallowed so the
// connection stays usable.
func (r *Router) Dispatch(c Client, raw []byte) error {
	var env inboundEvent
	if err := json.Unmarshal(raw, &env); err != nil {
		r.log.Debug("dropping malformed frame",
			zap.String("socket_id", c.GetSocketID()), zap.Error(err))
		return nil
	}

	switch env.Event {
	case EventLogin:
		return r.handleLogin(c, env.Data)
	case EventChat:
		r.handleChat(env.Data)
	case EventMarkSeen:
		r.handleMarkSeen(env.Data)
	case EventLogout:
		r.handleLogout(env.Data)
	default:
		r.log.Debug("unknown event", zap.String("event", env.Event))
	}
	return nil
}

// HandleDisconnect is called by the transport when the connection drops. It
// removes the connection from the hub; presence is left untouched unless
// OfflineOnDisconnect is set.
func (r *Router) HandleDisconnect(c Client) {
	r.Hub.Unregister(c)

	if !r.OfflineOnDisconnect {
		return
	}
	uid := c.GetUserID()
	if uid == "" {
		return
	}
	if _, ok := r.Presence.Lookup(uid); ok {
		r.Presence.MarkOffline(uid)
		r.Hub.Broadcast(Event{Name: EventLeave, Data: models.LeavePayload{UserID: uid}})
	}
}

func (r *Router) handleLogin(c Client, data json.RawMessage) error {
	var p models.LoginPayload
	if err := json.Unmarshal(data, &p); err != nil || p.UserID == "" {
		r.log.Warn("login rejected",
			zap.String("socket_id", c.GetSocketID()))
		return ErrUnauthenticated
	}

	r.Presence.Upsert(p.UserID, c.GetSocketID())
	r.log.Info("user logged in",
		zap.String("user_id", p.UserID),
		zap.String("socket_id", c.GetSocketID()))

	r.Hub.Broadcast(Event{
		Name: EventJoin,
		Data: models.JoinPayload{OnlineUsers: r.Presence.Snapshot()},
	})
	return nil
}

func (r *Router) handleChat(data json.RawMessage) {
	var p models.ChatPayload
	if err := json.Unmarshal(data, &p); err != nil {
		r.log.Debug("dropping malformed chat payload", zap.Error(err))
		return
	}
	if p.CurrentUserID == "" || p.MessageUserID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.OpTimeout)
	defer cancel()

	match, err := r.Store.FindMatchBetween(ctx, p.CurrentUserID, p.MessageUserID)
	if err != nil {
		r.log.Error("match lookup failed", zap.Error(err))
		return
	}
	if match == nil {
		r.log.Info("no match found between users",
			zap.String("sender", p.CurrentUserID),
			zap.String("recipient", p.MessageUserID))
		return
	}
	if match.Status != models.MatchStatusActive {
		r.log.Info("users are not actively matched",
			zap.String("sender", p.CurrentUserID),
			zap.String("recipient", p.MessageUserID),
			zap.String("status", string(match.Status)))
		return
	}

	var fileURL *string
	contentType := models.ContentTypeText

	if p.File != "" {
		if url, ok := r.uploadAttachment(ctx, p); ok {
			fileURL = &url
			contentType = models.ContentTypeFile
		}
		// Decode/upload failure degrades to a text-only message.
	}

	msg := &models.Message{
		MatchID:     match.ID,
		SenderID:    p.CurrentUserID,
		RecipientID: p.MessageUserID,
		Content:     p.Message,
		ContentType: contentType,
		FileURL:     fileURL,
	}
	if err := r.Store.CreateMessage(ctx, msg); err != nil {
		r.log.Error("message persistence failed", zap.Error(err))
		return
	}

	r.Hub.Broadcast(Event{Name: EventChatBcast, Data: msg.Record()})

	if sess, ok := r.Presence.Lookup(p.MessageUserID); ok {
		r.Hub.EmitTo(sess.SocketID, Event{
			Name: EventChatMessage,
			Data: models.ChatNotification{
				SenderID:    p.CurrentUserID,
				RecipientID: p.MessageUserID,
				Content:     p.Message,
			},
		})
	}
}

// uploadAttachment decodes the inline base64 blob and hands it to the upload
// collaborator. Returns the public URL, or ok=false on any failure.
func (r *Router) uploadAttachment(ctx context.Context, p models.ChatPayload) (string, bool) {
	if r.Uploader == nil {
		r.log.Warn("no uploader configured, dropping attachment")
		return "", false
	}

	data, err := base64.StdEncoding.DecodeString(p.File)
	if err != nil {
		r.log.Warn("file decode failed", zap.Error(err))
		return "", false
	}

	filename := p.Filename
	if filename == "" {
		filename = "file"
	}
	contentType := p.ContentType
	if contentType == "" {
		contentType = "image/jpg"
	}

	url, err := r.Uploader.Upload(ctx, upload.File{
		Data:        data,
		Filename:    filename,
		ContentType: contentType,
	}, "message_file", p.CurrentUserID+"..."+p.MessageUserID)
	if err != nil {
		r.log.Warn("file upload failed", zap.Error(err))
		return "", false
	}
	return url, true
}

func (r *Router) handleMarkSeen(data json.RawMessage) {
	var p models.MarkSeenPayload
	if err := json.Unmarshal(data, &p); err != nil {
		r.log.Debug("dropping malformed mark-seen payload", zap.Error(err))
		return
	}
	if p.CurrentUserID == "" || p.SenderID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.OpTimeout)
	defer cancel()

	count, err := r.Store.MarkMessagesSeen(ctx, p.SenderID, p.CurrentUserID)
	if err != nil {
		r.log.Error("mark-seen update failed", zap.Error(err))
		return
	}
	r.log.Debug("messages marked seen",
		zap.String("sender", p.SenderID),
		zap.String("reader", p.CurrentUserID),
		zap.Int64("count", count))

	if sess, ok := r.Presence.Lookup(p.SenderID); ok {
		r.Hub.EmitTo(sess.SocketID, Event{
			Name: EventMessageSeen,
			Data: models.SeenNotification{
				SenderID: p.SenderID,
				ReaderID: p.CurrentUserID,
			},
		})
	}
}

func (r *Router) handleLogout(data json.RawMessage) {
	var p models.LogoutPayload
	if err := json.Unmarshal(data, &p); err != nil || p.UserID == "" {
		return
	}

	if _, ok := r.Presence.Lookup(p.UserID); !ok {
		return
	}
	r.Presence.MarkOffline(p.UserID)
	r.log.Info("user logged out", zap.String("user_id", p.UserID))

	r.Hub.Broadcast(Event{Name: EventLeave, Data: models.LeavePayload{UserID: p.UserID}})
}
