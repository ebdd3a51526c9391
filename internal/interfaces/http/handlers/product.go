// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/commerce"
	"github.com/your-org/storefront-gateway/internal/config"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	api    *commerce.Client
	config *config.Config
}

// NewProductHandler creates a new product handler
func NewProductHandler(api *commerce.Client, cfg *config.Config) *ProductHandler {
	return &ProductHandler{api: api, config: cfg}
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	first, err := strconv.Atoi(c.DefaultQuery("first", "20"))
	if err != nil || first < 1 || first > 100 {
		first = 20
	}
	after := c.Query("after")

	var filter *commerce.ProductFilter
	if search := c.Query("search"); search != "" {
		filter = &commerce.ProductFilter{Search: search}
	}
	if category := c.Query("category"); category != "" {
		if filter == nil {
			filter = &commerce.ProductFilter{}
		}
		filter.Categories = []string{category}
	}

	var sortBy *commerce.ProductOrder
	if sort := c.Query("sort"); sort != "" {
		direction := "ASC"
		if c.DefaultQuery("direction", "asc") == "desc" {
			direction = "DESC"
		}
		sortBy = &commerce.ProductOrder{Field: sort, Direction: direction}
	}

	page, err := h.api.Products(c.Request.Context(), h.config.Commerce.Channel, first, after, filter, sortBy)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": page,
	})
}

// GetProduct handles GET /products/:slug
func (h *ProductHandler) GetProduct(c *gin.Context) {
	slug := c.Param("slug")

	product, err := h.api.ProductBySlug(c.Request.Context(), h.config.Commerce.Channel, slug)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"product": product},
	})
}

// ListCategories handles GET /categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	first, err := strconv.Atoi(c.DefaultQuery("first", "50"))
	if err != nil || first < 1 || first > 100 {
		first = 50
	}

	categories, err := h.api.Categories(c.Request.Context(), h.config.Commerce.Channel, first)
	if err != nil {
		respondError(c, err)
		return
	}
	if categories == nil {
		categories = []commerce.Category{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"categories": categories},
	})
}
