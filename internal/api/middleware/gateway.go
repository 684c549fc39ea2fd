package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GatewayAuth trusts user info from gateway headers (X-User-ID, X-User-Email).
// Used when the API runs behind a front-end gateway that already validated
// the caller. The headers are trusted unconditionally, so AUTH_MODE=gateway
// should ONLY be used behind proper network isolation.
func GatewayAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "Missing X-User-ID header from gateway",
			})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("user_email", c.GetHeader("X-User-Email"))

		c.Next()
	}
}

// GetUserID retrieves the caller identity set by GatewayAuth or NoAuth.
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}
