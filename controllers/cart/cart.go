package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rangsey10/sport-jerseys-api/cart"
	"github.com/Rangsey10/sport-jerseys-api/middleware"
	"github.com/Rangsey10/sport-jerseys-api/models"
)

type CartItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type UpdateQuantityInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  *int   `json:"quantity" binding:"required"`
}

// GetCart returns the caller's cart lines and pre-tax subtotal.
func GetCart(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.SessionUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items":    carts.Items(userID),
			"subtotal": carts.Subtotal(userID),
		})
	}
}

// AddCartItem validates the product and size against the catalog, snapshots
// name/image/price, and adds the line. Same product + same size merges.
func AddCartItem(db *gorm.DB, carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.SessionUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		if !product.HasSize(input.Size) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Size not available for this product"})
			return
		}

		item := cart.Item{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: product.MainImage(),
			Size:         input.Size,
			UnitPrice:    product.Price,
			Quantity:     input.Quantity,
		}
		if err := carts.Add(userID, item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"items": carts.Items(userID)})
	}
}

// UpdateCartQuantity sets a line's quantity; zero removes the line.
func UpdateCartQuantity(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.SessionUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		err := carts.UpdateQuantity(userID, input.ProductID, input.Size, *input.Quantity)
		if errors.Is(err, cart.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": carts.Items(userID)})
	}
}

// RemoveCartItem deletes one line, keyed by product id + size.
func RemoveCartItem(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.SessionUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		productID := c.Param("productID")
		size := c.Query("size")
		if productID == "" || size == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product id and size are required"})
			return
		}

		if err := carts.Remove(userID, productID, size); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": carts.Items(userID)})
	}
}

// ClearCart empties the caller's cart.
func ClearCart(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.SessionUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		carts.Clear(userID)
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
