package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Rangsey10/sport-jerseys-api/cart"
	orderControllers "github.com/Rangsey10/sport-jerseys-api/controllers/order"
	"github.com/Rangsey10/sport-jerseys-api/middleware"
	"github.com/Rangsey10/sport-jerseys-api/store"
)

func SetupOrderRoutes(r *gin.Engine, orders store.OrderStore, carts *cart.Store, feed *orderControllers.Feed) {
	group := r.Group("/orders")
	group.Use(middleware.ValidateToken)
	{
		// Client-confirmed checkout path
		group.POST("/place", orderControllers.PlaceOrderHandler(orders, carts, feed))

		// Caller's own orders only
		group.GET("", orderControllers.GetUserOrdersHandler(orders))
		group.GET("/:orderID", orderControllers.GetOrderByIDHandler(orders))
	}
}
