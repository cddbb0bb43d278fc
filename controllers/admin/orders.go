package adminControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	orderControllers "github.com/Rangsey10/sport-jerseys-api/controllers/order"
	"github.com/Rangsey10/sport-jerseys-api/models"
	"github.com/Rangsey10/sport-jerseys-api/store"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminOrder is the console view of an order: the order itself plus the
// owner's resolved display fields. Profiles are created by the auth
// provider's trigger and can be missing; the view tolerates that.
type AdminOrder struct {
	models.Order
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`
}

func adminView(order models.Order) AdminOrder {
	view := AdminOrder{Order: order}
	if order.Profile != nil {
		view.UserEmail = order.Profile.Email
		view.UserName = order.Profile.DisplayName()
	}
	return view
}

// GetAllOrdersHandler lists every order system-wide, optionally filtered by
// status. The admin gate has already run; this handler never re-checks.
func GetAllOrdersHandler(orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var status models.OrderStatus
		if raw := c.Query("status"); raw != "" {
			parsed, err := models.ParseOrderStatus(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			status = parsed
		}

		list, err := orders.ListAll(c.Request.Context(), status)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}

		views := make([]AdminOrder, 0, len(list))
		for _, order := range list {
			views = append(views, adminView(order))
		}
		c.JSON(http.StatusOK, views)
	}
}

// UpdateOrderStatusHandler moves an order along the fulfilment flow. Illegal
// transitions (e.g. delivered back to pending, or cancelling a shipped
// order) are rejected. Successful updates are pushed to the live feed.
func UpdateOrderStatusHandler(orders store.OrderStore, feed *orderControllers.Feed) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		next, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := orders.UpdateStatus(c.Request.Context(), orderID, next)
		switch {
		case errors.Is(err, store.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.Is(err, store.ErrIllegalTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
		default:
			feed.Broadcast(order)
			c.JSON(http.StatusOK, adminView(*order))
		}
	}
}

// GetOrderStatsHandler feeds the dashboard widgets.
func GetOrderStatsHandler(orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := orders.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute order stats"})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
