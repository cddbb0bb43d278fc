package paymentControllers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	orderControllers "github.com/Rangsey10/sport-jerseys-api/controllers/order"
	"github.com/Rangsey10/sport-jerseys-api/payment"
	"github.com/Rangsey10/sport-jerseys-api/store"
)

// EventVerifier is the slice of payment.Client the webhook needs.
type EventVerifier interface {
	ConstructEvent(payload []byte, sigHeader string) (payment.Event, error)
}

// WebhookHandler receives the provider's asynchronous payment events. The
// raw body is read before anything parses it, because the signature covers
// the exact bytes. Signature failure rejects with 400 and processes nothing.
//
// Once the signature checks out the response is always 200 {received:true}:
// the provider delivers at-least-once and retries anything else, so
// unhandled event types are acknowledged untouched and persistence failures
// are logged for an operator instead of bounced back into a retry storm.
func WebhookHandler(payments EventVerifier, orders store.OrderStore, feed *orderControllers.Feed) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}

		event, err := payments.ConstructEvent(body, c.GetHeader(payment.SignatureHeader))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook Error: " + err.Error()})
			return
		}

		switch event.Type {
		case payment.EventTypePaymentSucceeded:
			recordOrder(c, event, orders, feed)
		default:
			log.Printf("unhandled webhook event type %s", event.Type)
		}

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

// recordOrder turns a succeeded payment into an order, exactly once per
// payment reference. Failures are logged, never surfaced to the provider.
func recordOrder(c *gin.Context, event payment.Event, orders store.OrderStore, feed *orderControllers.Feed) {
	intent := event.Data.Object

	userID := intent.Metadata["user_id"]

	var lines []payment.LineItem
	if err := json.Unmarshal([]byte(intent.Metadata["items"]), &lines); err != nil {
		log.Printf("webhook %s: failed to decode cart snapshot for payment %s: %v", event.ID, intent.ID, err)
		return
	}

	inputs := make([]store.OrderItemInput, 0, len(lines))
	for _, line := range lines {
		inputs = append(inputs, store.OrderItemInput{
			ProductID:    line.ID,
			ProductName:  line.Name,
			ProductImage: line.Image,
			Size:         line.SelectedSize,
			Quantity:     int(line.Quantity),
			UnitPrice:    line.UnitPrice(),
		})
	}

	order, err := orders.CreateFromPayment(c.Request.Context(), intent.ID, userID, inputs, intent.Amount, nil)
	if errors.Is(err, store.ErrDuplicatePayment) {
		log.Printf("webhook %s: payment %s already recorded as order %s", event.ID, intent.ID, order.ID)
		return
	}
	if err != nil {
		log.Printf("webhook %s: failed to create order for payment %s: %v", event.ID, intent.ID, err)
		return
	}

	log.Printf("webhook %s: payment %s recorded as order %s", event.ID, intent.ID, order.ID)
	feed.Broadcast(order)
}
