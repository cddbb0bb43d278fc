package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rangsey10/sport-jerseys-api/cart"
	"github.com/Rangsey10/sport-jerseys-api/middleware"
	"github.com/Rangsey10/sport-jerseys-api/models"
	"github.com/Rangsey10/sport-jerseys-api/store"
)

type PlaceOrderRequest struct {
	ShippingAddress *struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Address   string `json:"address"`
		City      string `json:"city"`
		State     string `json:"state"`
		ZipCode   string `json:"zip_code"`
	} `json:"shipping_address"`
}

// PlaceOrderHandler is the client-confirmed checkout path: the caller's cart
// becomes an order and the cart is cleared. The webhook path is the other
// writer; both end up in store.OrderStore.
func PlaceOrderHandler(orders store.OrderStore, carts *cart.Store, feed *Feed) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.SessionUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		// Shipping address is optional; an empty body is a valid request.
		var req PlaceOrderRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
				return
			}
		}

		items := carts.Items(userID)
		if len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			return
		}

		inputs := make([]store.OrderItemInput, 0, len(items))
		for _, item := range items {
			inputs = append(inputs, store.OrderItemInput{
				ProductID:    item.ProductID,
				ProductName:  item.ProductName,
				ProductImage: item.ProductImage,
				Size:         item.Size,
				Quantity:     item.Quantity,
				UnitPrice:    item.UnitPrice,
			})
		}

		order, err := orders.Create(c.Request.Context(), userID, inputs, shippingAddress(req))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
			return
		}

		carts.Clear(userID)
		feed.Broadcast(order)

		c.JSON(http.StatusCreated, gin.H{"order_id": order.ID})
	}
}

// GetUserOrdersHandler returns the caller's own orders, newest first.
func GetUserOrdersHandler(orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.SessionUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		list, err := orders.ListByUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GetOrderByIDHandler returns one of the caller's orders. Orders owned by
// someone else read as not found rather than forbidden, so ids don't leak.
func GetOrderByIDHandler(orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.SessionUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		order, err := orders.GetByID(c.Request.Context(), orderID)
		if errors.Is(err, store.ErrOrderNotFound) || (err == nil && order.UserID != userID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func shippingAddress(req PlaceOrderRequest) *models.ShippingAddress {
	if req.ShippingAddress == nil {
		return nil
	}
	a := req.ShippingAddress
	return &models.ShippingAddress{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Address:   a.Address,
		City:      a.City,
		State:     a.State,
		ZipCode:   a.ZipCode,
	}
}
