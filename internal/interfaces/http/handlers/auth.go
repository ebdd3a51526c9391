// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/domain/auth"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	controller *auth.Controller
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(controller *auth.Controller) *AuthHandler {
	return &AuthHandler{controller: controller}
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	device := middleware.DeviceFromGin(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	user, err := h.controller.Login(c.Request.Context(), device, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"data":    gin.H{"user": user},
	})
}

// Register handles POST /auth/register. Success does not sign the device in;
// clients follow up with a login.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	user, err := h.controller.Register(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"data":    gin.H{"user": user},
	})
}

// Logout handles POST /auth/logout. Always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	device := middleware.DeviceFromGin(c)
	h.controller.Logout(c.Request.Context(), device)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// Me handles GET /auth/me: the device's authentication state plus the
// backend-confirmed profile
func (h *AuthHandler) Me(c *gin.Context) {
	device := middleware.DeviceFromGin(c)

	state, user, err := h.controller.Restore(c.Request.Context(), device)
	if err != nil {
		// Backend unreachable: report the cached state with a 200 so the
		// client can keep rendering.
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{
				"state":   state,
				"user":    user,
				"degraded": true,
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"state": state,
			"user":  user,
		},
	})
}

// RefreshProfile handles POST /auth/refresh-profile
func (h *AuthHandler) RefreshProfile(c *gin.Context) {
	device := middleware.DeviceFromGin(c)

	user, err := h.controller.RefreshUser(c.Request.Context(), device)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile refreshed",
		"data":    gin.H{"user": user},
	})
}
