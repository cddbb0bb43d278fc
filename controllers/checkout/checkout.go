package checkoutControllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rangsey10/sport-jerseys-api/middleware"
	"github.com/Rangsey10/sport-jerseys-api/payment"
)

// IntentCreator is the slice of payment.Client the initiator needs.
type IntentCreator interface {
	CreatePaymentIntent(ctx context.Context, p payment.IntentParams) (*payment.Intent, error)
}

type CheckoutRequest struct {
	Items    []payment.LineItem `json:"items"`
	Customer struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"customer"`
}

// CreateCheckoutSessionHandler recomputes the payable amount from the line
// prices, requests a payment intent and hands the client secret back. The
// user id and a cart snapshot ride on the intent as metadata so the webhook
// can rebuild the order. Side-effect free on local storage: nothing is
// written here on any path.
func CreateCheckoutSessionHandler(payments IntentCreator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.SessionUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		if err := payment.ValidateLineItems(req.Items); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid items"})
			return
		}
		if req.Customer.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing customer information"})
			return
		}

		amount := payment.TotalMinorUnits(req.Items)

		snapshot, err := json.Marshal(req.Items)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid items"})
			return
		}

		intent, err := payments.CreatePaymentIntent(c.Request.Context(), payment.IntentParams{
			Amount:       amount,
			Currency:     "usd",
			ReceiptEmail: req.Customer.Email,
			Metadata: map[string]string{
				"user_id": userID,
				"items":   string(snapshot),
			},
		})
		if err != nil {
			log.Printf("failed to create payment intent: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"clientSecret": intent.ClientSecret})
	}
}

// UnconfiguredHandler answers checkout and webhook routes when the payment
// provider credentials are absent. Mounting an explicit failure beats a
// silently-inert client.
func UnconfiguredHandler(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": payment.ErrNotConfigured.Error()})
}
