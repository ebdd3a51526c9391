// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionChecker reports whether a device holds a currently valid token.
// The session store satisfies it.
type SessionChecker interface {
	IsValid(ctx context.Context, device string) bool
}

// RequireAuth blocks requests from devices without a valid stored token.
// The device key must already be resolved by DeviceKey.
func RequireAuth(sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		device := DeviceFromGin(c)
		if device == "" || !sessions.IsValid(c.Request.Context(), device) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "UNAUTHORIZED",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
