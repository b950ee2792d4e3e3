package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is where the middleware stores the authenticated user ID.
const ContextUserKey = "uid"

// Middleware validates the x-auth-token header and puts the user ID on the
// gin context.
func Middleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("x-auth-token")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied!! No auth token found."})
			return
		}

		userID, err := ParseToken(secret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied!! Auth token not valid."})
			return
		}

		c.Set(ContextUserKey, userID)
		c.Next()
	}
}

// UserID pulls the authenticated user ID off the context.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserKey)
}
