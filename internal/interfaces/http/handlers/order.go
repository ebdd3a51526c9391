// internal/interfaces/http/handlers/order.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/domain/account"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
)

// OrderHandler handles order history endpoints
type OrderHandler struct {
	accounts *account.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(accounts *account.Service) *OrderHandler {
	return &OrderHandler{accounts: accounts}
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	device := middleware.DeviceFromGin(c)

	first, err := strconv.Atoi(c.DefaultQuery("first", "20"))
	if err != nil || first < 1 || first > 100 {
		first = 20
	}
	after := c.Query("after")

	page, err := h.accounts.Orders(c.Request.Context(), device, first, after)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": page,
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	device := middleware.DeviceFromGin(c)
	id := c.Param("id")

	order, err := h.accounts.Order(c.Request.Context(), device, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"order": order},
	})
}
