package routes

import (
	"github.com/gin-gonic/gin"

	checkoutControllers "github.com/Rangsey10/sport-jerseys-api/controllers/checkout"
	orderControllers "github.com/Rangsey10/sport-jerseys-api/controllers/order"
	paymentControllers "github.com/Rangsey10/sport-jerseys-api/controllers/payment"
	"github.com/Rangsey10/sport-jerseys-api/middleware"
	"github.com/Rangsey10/sport-jerseys-api/payment"
	"github.com/Rangsey10/sport-jerseys-api/store"
)

func SetupPaymentRoutes(r *gin.Engine, payClient *payment.Client, orders store.OrderStore, feed *orderControllers.Feed) {
	if payClient == nil {
		r.POST("/checkout", middleware.ValidateToken, checkoutControllers.UnconfiguredHandler)
		r.POST("/payment/webhook", checkoutControllers.UnconfiguredHandler)
		return
	}

	// Checkout-session creation (session-gated)
	r.POST("/checkout", middleware.ValidateToken, checkoutControllers.CreateCheckoutSessionHandler(payClient))

	// Provider webhook: authenticated by signature, not by session. The
	// handler reads the raw body itself; no parsing middleware may run first.
	r.POST("/payment/webhook", paymentControllers.WebhookHandler(payClient, orders, feed))
}
