package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"matchpoint/backend/internal/auth"
	"matchpoint/backend/internal/chathub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict to the app's origins once the client domains are fixed.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket verifies the bearer token, upgrades the connection and
// hands it to the hub. The presence session is only created later, by the
// login event.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
		return
	}

	userID, err := auth.ParseToken([]byte(h.Cfg.JWTSecret), token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := chathub.NewWebSocketClient(h.Router, conn, userID, h.Log)
	h.Log.Debug("websocket connected",
		zap.String("user_id", userID),
		zap.String("socket_id", client.GetSocketID()))

	h.Hub.RegisterCh <- client
	client.Run()
}

// bearerToken reads the token from the Authorization header, falling back
// to the token query parameter for browser websocket clients.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}
