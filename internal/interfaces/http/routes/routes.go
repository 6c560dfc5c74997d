// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-bff/internal/config"
	"github.com/your-org/storefront-bff/internal/domain/session"
	"github.com/your-org/storefront-bff/internal/infrastructure/upstream"
	"github.com/your-org/storefront-bff/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-bff/internal/interfaces/http/middleware"
)

// Deps carries the wired dependencies the route handlers need
type Deps struct {
	Config    *config.Config
	Sessions  *session.Manager
	Orders    *upstream.OrderGateway
	Addresses *upstream.AddressGateway
	Auth      *upstream.AuthGateway
	Logger    *logrus.Logger
}

// SetupRoutes registers all API routes. Every route requires authentication:
// this service fronts the account-scoped cart and checkout surface, and
// anonymous carts live entirely in the browser.
func SetupRoutes(rg *gin.RouterGroup, deps Deps) {
	cartHandler := handlers.NewCartHandler(deps.Sessions)
	checkoutHandler := handlers.NewCheckoutHandler(deps.Sessions)
	orderHandler := handlers.NewOrderHandler(deps.Sessions, deps.Orders)
	addressHandler := handlers.NewAddressHandler(deps.Sessions, deps.Addresses)
	authHandler := handlers.NewAuthHandler(deps.Sessions, deps.Auth, deps.Logger)

	protected := rg.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config))

	cart := protected.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/refresh", cartHandler.RefreshCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveCartItem)
		cart.DELETE("/clear", cartHandler.ClearCart)
	}

	checkout := protected.Group("/checkout")
	{
		checkout.POST("", checkoutHandler.BeginCheckout)
		checkout.GET("", checkoutHandler.GetCheckout)
		checkout.PUT("/selection", checkoutHandler.UpdateSelection)
		checkout.POST("/submit", checkoutHandler.SubmitCheckout)
	}

	orders := protected.Group("/orders")
	{
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.POST("/:id/cancel", orderHandler.CancelOrder)
	}

	protected.GET("/addresses", addressHandler.ListAddresses)

	auth := protected.Group("/auth")
	{
		auth.POST("/logout", authHandler.Logout)
	}
}
