// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/commerce"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/domain/account"
	"github.com/your-org/storefront-gateway/internal/domain/auth"
	"github.com/your-org/storefront-gateway/internal/domain/checkout"
	"github.com/your-org/storefront-gateway/internal/domain/session"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
)

// Dependencies carries the wired domain objects the routes hang off
type Dependencies struct {
	Config         *config.Config
	Commerce       *commerce.Client
	Sessions       *session.Store
	CheckoutStore  *checkout.Store
	Orchestrator   *checkout.Orchestrator
	AuthController *auth.Controller
	Accounts       *account.Service
}

// SetupRoutes wires all API routes onto the group
func SetupRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.AuthController)
	cartHandler := handlers.NewCartHandler(deps.CheckoutStore)
	checkoutHandler := handlers.NewCheckoutHandler(deps.Orchestrator, deps.CheckoutStore)
	productHandler := handlers.NewProductHandler(deps.Commerce, deps.Config)
	orderHandler := handlers.NewOrderHandler(deps.Accounts)
	accountHandler := handlers.NewAccountHandler(deps.Accounts)

	authRoutes := rg.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/logout", authHandler.Logout)
		authRoutes.GET("/me", authHandler.Me)

		protected := authRoutes.Group("")
		protected.Use(middleware.RequireAuth(deps.Sessions))
		{
			protected.POST("/refresh-profile", authHandler.RefreshProfile)
		}
	}

	// Catalog is public
	products := rg.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/:slug", productHandler.GetProduct)
	}
	rg.GET("/categories", productHandler.ListCategories)

	// Cart works for guest devices
	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.POST("/items", cartHandler.AddItem)
		cart.PUT("/items/:id", cartHandler.UpdateItem)
		cart.DELETE("/items/:id", cartHandler.RemoveItem)
		cart.POST("/promo-code", cartHandler.ApplyPromoCode)
		cart.DELETE("/promo-code", cartHandler.RemovePromoCode)
	}

	// Checkout steps require a signed-in device
	checkoutRoutes := rg.Group("/checkout")
	checkoutRoutes.Use(middleware.RequireAuth(deps.Sessions))
	{
		checkoutRoutes.GET("", checkoutHandler.GetCheckout)
		checkoutRoutes.POST("/address", checkoutHandler.SubmitAddress)
		checkoutRoutes.GET("/shipping-methods", checkoutHandler.ShippingMethods)
		checkoutRoutes.POST("/shipping-method", checkoutHandler.SelectShippingMethod)
		checkoutRoutes.POST("/payment-method", checkoutHandler.SelectPaymentMethod)
		checkoutRoutes.POST("/complete", checkoutHandler.Complete)
	}

	// Account and orders require a signed-in device
	accountRoutes := rg.Group("/account")
	accountRoutes.Use(middleware.RequireAuth(deps.Sessions))
	{
		accountRoutes.GET("/profile", accountHandler.GetProfile)
		accountRoutes.PUT("/profile", accountHandler.UpdateProfile)
	}

	orders := rg.Group("/orders")
	orders.Use(middleware.RequireAuth(deps.Sessions))
	{
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)
	}
}
