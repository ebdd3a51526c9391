// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/commerce"
	"github.com/your-org/storefront-gateway/internal/domain/checkout"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
)

// CheckoutHandler handles the checkout flow endpoints
type CheckoutHandler struct {
	orchestrator *checkout.Orchestrator
	store        *checkout.Store
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(orchestrator *checkout.Orchestrator, store *checkout.Store) *CheckoutHandler {
	return &CheckoutHandler{orchestrator: orchestrator, store: store}
}

// AddressRequest is the address step payload
type AddressRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	StreetAddress1 string `json:"street_address1" binding:"required"`
	StreetAddress2 string `json:"street_address2"`
	City           string `json:"city" binding:"required"`
	CityArea       string `json:"city_area"`
	CountryArea    string `json:"country_area"`
	PostalCode     string `json:"postal_code" binding:"required"`
	Country        string `json:"country" binding:"required"`
	Phone          string `json:"phone"`
}

// ShippingMethodRequest selects a delivery option
type ShippingMethodRequest struct {
	MethodID string `json:"method_id" binding:"required"`
}

// PaymentMethodRequest selects a payment method. Card details are required
// only for the card method and are never persisted.
type PaymentMethodRequest struct {
	Method string                `json:"method" binding:"required"`
	Card   *checkout.CardDetails `json:"card"`
}

// GetCheckout handles GET /checkout: the current session state including the
// locally selected payment method
func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	device := middleware.DeviceFromGin(c)
	state := h.store.Snapshot(c.Request.Context(), device)

	c.JSON(http.StatusOK, gin.H{
		"data": state,
	})
}

// SubmitAddress handles POST /checkout/address
func (h *CheckoutHandler) SubmitAddress(c *gin.Context) {
	device := middleware.DeviceFromGin(c)

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.orchestrator.SubmitAddress(c.Request.Context(), device, commerce.AddressInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		StreetAddress1: req.StreetAddress1,
		StreetAddress2: req.StreetAddress2,
		City:           req.City,
		CityArea:       req.CityArea,
		CountryArea:    req.CountryArea,
		PostalCode:     req.PostalCode,
		Country:        req.Country,
		Phone:          req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address saved successfully",
		"data":    gin.H{"checkout": updated},
	})
}

// ShippingMethods handles GET /checkout/shipping-methods
func (h *CheckoutHandler) ShippingMethods(c *gin.Context) {
	device := middleware.DeviceFromGin(c)

	methods, err := h.orchestrator.ShippingMethods(c.Request.Context(), device)
	if err != nil {
		respondError(c, err)
		return
	}
	if methods == nil {
		methods = []commerce.ShippingMethod{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"shipping_methods": methods},
	})
}

// SelectShippingMethod handles POST /checkout/shipping-method
func (h *CheckoutHandler) SelectShippingMethod(c *gin.Context) {
	device := middleware.DeviceFromGin(c)

	var req ShippingMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.orchestrator.SelectShippingMethod(c.Request.Context(), device, req.MethodID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shipping method selected",
		"data":    gin.H{"checkout": updated},
	})
}

// SelectPaymentMethod handles POST /checkout/payment-method
func (h *CheckoutHandler) SelectPaymentMethod(c *gin.Context) {
	device := middleware.DeviceFromGin(c)

	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	selection, err := h.orchestrator.SelectPaymentMethod(c.Request.Context(), device, req.Method, req.Card)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment method selected",
		"data":    gin.H{"payment_method": selection},
	})
}

// Complete handles POST /checkout/complete
func (h *CheckoutHandler) Complete(c *gin.Context) {
	device := middleware.DeviceFromGin(c)

	order, err := h.orchestrator.PlaceOrder(c.Request.Context(), device)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order placed successfully",
		"data":    gin.H{"order": order},
	})
}
