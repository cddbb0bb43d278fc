package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminControllers "github.com/Rangsey10/sport-jerseys-api/controllers/admin"
	orderControllers "github.com/Rangsey10/sport-jerseys-api/controllers/order"
	productcontroller "github.com/Rangsey10/sport-jerseys-api/controllers/product"
	userControllers "github.com/Rangsey10/sport-jerseys-api/controllers/user"
	"github.com/Rangsey10/sport-jerseys-api/middleware"
	"github.com/Rangsey10/sport-jerseys-api/store"
)

// SetupAdminRoutes registers all "/admin/*" endpoints behind the role gate.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, orders store.OrderStore, profiles *store.Profiles, feed *orderControllers.Feed) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin(profiles))
	{
		// ─────────── Order Console ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", adminControllers.GetAllOrdersHandler(orders))
			orderAdmin.GET("/stats", adminControllers.GetOrderStatsHandler(orders))
			orderAdmin.GET("/export", adminControllers.ExportOrdersToExcel(orders))
			orderAdmin.GET("/ws", feed.Handler)
			orderAdmin.PUT("/:orderID/status", adminControllers.UpdateOrderStatusHandler(orders, feed))
		}

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
		}

		// ─────────── Profiles ───────────
		adminGroup.GET("/profiles", userControllers.GetAllProfiles(profiles))
	}
}
