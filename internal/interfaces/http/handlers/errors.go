// internal/interfaces/http/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/commerce"
	"github.com/your-org/storefront-gateway/internal/domain/auth"
	"github.com/your-org/storefront-gateway/internal/domain/checkout"
)

// respondError maps domain and backend errors onto HTTP responses. Backend
// field errors pass through with their field and code so forms can highlight
// the offending input.
func respondError(c *gin.Context, err error) {
	switch {
	case checkout.IsValidation(err):
		var validationErr *checkout.ValidationError
		errors.As(err, &validationErr)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Message,
			"field": validationErr.Field,
			"code":  "VALIDATION_ERROR",
		})
	case errors.Is(err, checkout.ErrNoCheckout):
		c.JSON(http.StatusConflict, gin.H{
			"error": "No active checkout session",
			"code":  "NO_CHECKOUT",
		})
	case errors.Is(err, checkout.ErrOrderPlaced):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Order already placed",
			"code":  "ORDER_PLACED",
		})
	case errors.Is(err, checkout.ErrNotAuthenticated), errors.Is(err, auth.ErrNotSignedIn):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
			"code":  "UNAUTHORIZED",
		})
	case commerce.IsAuthExpired(err):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Session expired, please sign in again",
			"code":  "SESSION_EXPIRED",
		})
	case commerce.IsTransport(err):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Commerce backend unavailable",
			"code":  "BACKEND_UNAVAILABLE",
		})
	default:
		var requestErr *commerce.RequestError
		if errors.As(err, &requestErr) {
			status := http.StatusBadRequest
			if requestErr.Code == "NOT_FOUND" {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{
				"error": requestErr.Message,
				"field": requestErr.Field,
				"code":  requestErr.Code,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
