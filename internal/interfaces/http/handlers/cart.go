// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/domain/checkout"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints over the device's checkout session
type CartHandler struct {
	store *checkout.Store
}

// NewCartHandler creates a new cart handler
func NewCartHandler(store *checkout.Store) *CartHandler {
	return &CartHandler{store: store}
}

// AddItemRequest adds a variant to the cart
type AddItemRequest struct {
	VariantID string `json:"variant_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// UpdateItemRequest changes a line quantity
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// PromoCodeRequest applies a discount code
type PromoCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	device := middleware.DeviceFromGin(c)
	state := h.store.Snapshot(c.Request.Context(), device)

	c.JSON(http.StatusOK, gin.H{
		"data": state,
	})
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	device := middleware.DeviceFromGin(c)

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.store.AddItem(c.Request.Context(), device, req.VariantID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	state := h.store.Snapshot(c.Request.Context(), device)
	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    state,
	})
}

// UpdateItem handles PUT /cart/items/:id. A zero quantity removes the line.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	device := middleware.DeviceFromGin(c)
	lineID := c.Param("id")

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.store.UpdateItemQuantity(c.Request.Context(), device, lineID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	state := h.store.Snapshot(c.Request.Context(), device)
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated successfully",
		"data":    state,
	})
}

// RemoveItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	device := middleware.DeviceFromGin(c)
	lineID := c.Param("id")

	if err := h.store.RemoveItem(c.Request.Context(), device, lineID); err != nil {
		respondError(c, err)
		return
	}

	state := h.store.Snapshot(c.Request.Context(), device)
	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    state,
	})
}

// ApplyPromoCode handles POST /cart/promo-code
func (h *CartHandler) ApplyPromoCode(c *gin.Context) {
	device := middleware.DeviceFromGin(c)

	var req PromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.store.ApplyPromoCode(c.Request.Context(), device, req.Code); err != nil {
		respondError(c, err)
		return
	}

	state := h.store.Snapshot(c.Request.Context(), device)
	c.JSON(http.StatusOK, gin.H{
		"message": "Promo code applied successfully",
		"data":    state,
	})
}

// RemovePromoCode handles DELETE /cart/promo-code
func (h *CartHandler) RemovePromoCode(c *gin.Context) {
	device := middleware.DeviceFromGin(c)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing promo code",
		})
		return
	}

	if err := h.store.RemovePromoCode(c.Request.Context(), device, code); err != nil {
		respondError(c, err)
		return
	}

	state := h.store.Snapshot(c.Request.Context(), device)
	c.JSON(http.StatusOK, gin.H{
		"message": "Promo code removed successfully",
		"data":    state,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	device := middleware.DeviceFromGin(c)

	if err := h.store.Clear(c.Request.Context(), device); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}
