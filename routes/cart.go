package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rangsey10/sport-jerseys-api/cart"
	cartControllers "github.com/Rangsey10/sport-jerseys-api/controllers/cart"
	"github.com/Rangsey10/sport-jerseys-api/middleware"
)

func SetupCartRoutes(r *gin.Engine, db *gorm.DB, carts *cart.Store) {
	group := r.Group("/user/cart")
	group.Use(middleware.ValidateToken)
	{
		group.GET("", cartControllers.GetCart(carts))
		group.POST("", cartControllers.AddCartItem(db, carts))
		group.PUT("", cartControllers.UpdateCartQuantity(carts))
		group.DELETE("", cartControllers.ClearCart(carts))
		group.DELETE("/:productID", cartControllers.RemoveCartItem(carts))
	}
}
