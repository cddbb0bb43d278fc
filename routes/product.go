package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/Rangsey10/sport-jerseys-api/controllers/product"
)

func SetupProductRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/categories", productcontroller.GetCategories(db))
		products.GET("/:id", productcontroller.GetProductByID(db))
	}
}
