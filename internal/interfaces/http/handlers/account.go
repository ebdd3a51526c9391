// internal/interfaces/http/handlers/account.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/commerce"
	"github.com/your-org/storefront-gateway/internal/domain/account"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
)

// AccountHandler handles profile endpoints
type AccountHandler struct {
	accounts *account.Service
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts *account.Service) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// UpdateProfileRequest updates name fields on the profile
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// GetProfile handles GET /account/profile
func (h *AccountHandler) GetProfile(c *gin.Context) {
	device := middleware.DeviceFromGin(c)

	user, err := h.accounts.Profile(c.Request.Context(), device)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"user": user},
	})
}

// UpdateProfile handles PUT /account/profile
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	device := middleware.DeviceFromGin(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	user, err := h.accounts.UpdateProfile(c.Request.Context(), device, commerce.AccountInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"data":    gin.H{"user": user},
	})
}
