package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Rangsey10/sport-jerseys-api/models"
)

type ProductInput struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	OriginalPrice *float64 `json:"original_price"`
	Images        []string `json:"images"`
	Category      string   `json:"category"`
	Team          string   `json:"team"`
	Sizes         []string `json:"sizes" binding:"required,min=1"`
	IsOnSale      bool     `json:"is_on_sale"`
	StockQuantity int      `json:"stock_quantity"`
}

func (in *ProductInput) apply(p *models.Product) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = decimal.NewFromFloat(in.Price)
	if in.OriginalPrice != nil {
		op := decimal.NewFromFloat(*in.OriginalPrice)
		p.OriginalPrice = &op
	} else {
		p.OriginalPrice = nil
	}
	p.Images = in.Images
	p.Category = in.Category
	p.Team = in.Team
	p.Sizes = in.Sizes
	p.IsOnSale = in.IsOnSale
	p.StockQuantity = in.StockQuantity
}

// CreateProduct adds a catalog entry (admin).
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		input.apply(&product)

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
