package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rangsey10/sport-jerseys-api/cart"
	orderControllers "github.com/Rangsey10/sport-jerseys-api/controllers/order"
	"github.com/Rangsey10/sport-jerseys-api/payment"
	"github.com/Rangsey10/sport-jerseys-api/store"
)

// SetupRoutes is the single entry-point that wires up every route group.
// payClient may be nil when the provider credentials are absent; the
// checkout and webhook routes then answer with an explicit configuration
// error instead of silently doing nothing.
func SetupRoutes(r *gin.Engine, db *gorm.DB, payClient *payment.Client) {
	orders := store.NewOrders(db)
	profiles := store.NewProfiles(db)
	carts := cart.NewStore()
	feed := orderControllers.NewFeed()

	// Public catalog browsing (no middleware)
	SetupProductRoutes(r, db)

	// Session-gated profile, cart and order routes
	SetupUserRoutes(r, profiles)
	SetupCartRoutes(r, db, carts)
	SetupOrderRoutes(r, orders, carts, feed)

	// Payment: checkout-session creation and the provider webhook
	SetupPaymentRoutes(r, payClient, orders, feed)

	// Admin console (role-gated)
	SetupAdminRoutes(r, db, orders, profiles, feed)
}
