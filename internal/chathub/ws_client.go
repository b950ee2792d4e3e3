package chathub

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Attachments arrive inline as base64, so the frame limit has to
	// accommodate whole files, not just text.
	maxMessageSize = 8 << 20

	sendBufferSize = 256
)

// WebSocketClient is the gorilla/websocket implementation of Client.
type WebSocketClient struct {
	socketID string
	userID   string

	Conn   *websocket.Conn
	Router *Router
	Send   chan Event

	log *zap.Logger
}

// NewWebSocketClient wraps an upgraded connection. userID is the identity
// verified from the bearer token on the upgrade request.
func NewWebSocketClient(router *Router, conn *websocket.Conn, userID string, log *zap.Logger) *WebSocketClient {
	return &WebSocketClient{
		socketID: uuid.New().String(),
		userID:   userID,
		Conn:     conn,
		Router:   router,
		Send:     make(chan Event, sendBufferSize),
		log:      log,
	}
}

func (c *WebSocketClient) GetSocketID() string          { return c.socketID }
func (c *WebSocketClient) GetUserID() string            { return c.userID }
func (c *WebSocketClient) GetSendChannel() chan<- Event { return c.Send }

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close shuts the send channel, which stops the write pump. The read pump
// stops on its own once the connection is closed.
func (c *WebSocketClient) Close() {
	close(c.Send)
}

// readPump reads frames off the socket and dispatches them inline, one at a
// time, which gives the per-connection ordering guarantee.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Router.HandleDisconnect(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("read error",
					zap.String("socket_id", c.socketID), zap.Error(err))
			}
			break
		}

		if err := c.Router.Dispatch(c, raw); err != nil {
			c.log.Warn("closing connection",
				zap.String("socket_id", c.socketID), zap.Error(err))
			break
		}
	}
}

// writePump drains the send channel onto the socket and keeps the
// connection alive with pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case e, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(e)
			if err != nil {
				c.log.Error("encode failed",
					zap.String("event", e.Name), zap.Error(err))
				continue
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
