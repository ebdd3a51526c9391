// internal/interfaces/http/middleware/device.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/storefront-gateway/internal/commerce"
)

const (
	// DeviceCookie identifies the browser across requests
	DeviceCookie = "sf_device"
	// deviceKeyContext is the gin context key the resolved device lands in
	deviceKeyContext = "device_key"

	deviceCookieMaxAge = 365 * 24 * 60 * 60
)

// DeviceKey resolves the device key from the request cookie, minting a new
// one on first contact. All per-device state downstream hangs off this key.
func DeviceKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		device, err := c.Cookie(DeviceCookie)
		if err != nil || device == "" {
			device = uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(DeviceCookie, device, deviceCookieMaxAge, "/", "", false, true)
		}
		c.Set(deviceKeyContext, device)
		// Tag the request context so downstream commerce calls can be traced
		// back to the device, including by the auth-expiry coordinator.
		c.Request = c.Request.WithContext(commerce.WithDevice(c.Request.Context(), device))
		c.Next()
	}
}

// DeviceFromGin returns the resolved device key for the request
func DeviceFromGin(c *gin.Context) string {
	if device, ok := c.Get(deviceKeyContext); ok {
		if s, ok := device.(string); ok {
			return s
		}
	}
	return ""
}
