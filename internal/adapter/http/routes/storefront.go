package routes

import (
	"storefront/internal/adapter/http/handlers"
	"storefront/internal/adapter/http/middleware"
	"storefront/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
)

const (
	PathPing       = "/ping"
	PathProducts   = "/products"
	PathCheckout   = "/checkout"
	PathWebhooks   = "/webhooks"
	PathContact    = "/contact"
	PathNewsletter = "/newsletter"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET(PathPing, handlers.Ping)
}

func addCatalogRoutes(rg *gin.RouterGroup, h *handlers.CatalogHandler) {
	products := rg.Group(PathProducts)
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
	}
}

func addCheckoutRoutes(rg *gin.RouterGroup, h *handlers.CheckoutHandler, limiter interfaces.IRateLimiter, limits RateLimits) {
	checkout := rg.Group(PathCheckout)
	{
		checkout.POST("", middleware.RateLimit(limiter, "checkout", limits.Checkout, limits.Window), h.PlaceOrder)
		checkout.GET("/status", h.GetStatus)
		checkout.POST("/:order_id/payment-session", h.CreatePaymentSession)
	}
}

func addWebhookRoutes(rg *gin.RouterGroup, h *handlers.PaymentWebhookHandler) {
	webhooks := rg.Group(PathWebhooks, middleware.AckOnPanic())
	{
		webhooks.POST("/payments", h.Handle)
		webhooks.POST("/mercadopago", h.HandleMercadoPago)
	}
}

func addContactRoutes(rg *gin.RouterGroup, contact *handlers.ContactHandler, newsletter *handlers.NewsletterHandler, limiter interfaces.IRateLimiter, limits RateLimits) {
	rg.POST(PathContact, middleware.RateLimit(limiter, "contact", limits.Contact, limits.Window), contact.Submit)
	rg.POST(PathNewsletter, middleware.RateLimit(limiter, "newsletter", limits.Newsletter, limits.Window), newsletter.Subscribe)
}
