package paymentControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rangsey10/sport-jerseys-api/models"
	"github.com/Rangsey10/sport-jerseys-api/payment"
	"github.com/Rangsey10/sport-jerseys-api/store"
)

const testWebhookSecret = "whsec_test_secret"

// MockOrderStore implements store.OrderStore for testing. CreateFromPayment
// mirrors the real store's dedup-by-payment-ref behavior.
type MockOrderStore struct {
	CreateCalls int
	CreateErr   error
	byRef       map[string]*models.Order
}

func NewMockOrderStore() *MockOrderStore {
	return &MockOrderStore{byRef: make(map[string]*models.Order)}
}

func (m *MockOrderStore) Create(_ context.Context, userID string, items []store.OrderItemInput, _ *models.ShippingAddress) (*models.Order, error) {
	return nil, errors.New("not used in webhook tests")
}

func (m *MockOrderStore) CreateFromPayment(_ context.Context, paymentRef, userID string, items []store.OrderItemInput, amountMinor int64, _ *models.ShippingAddress) (*models.Order, error) {
	m.CreateCalls++
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	if existing, ok := m.byRef[paymentRef]; ok {
		return existing, store.ErrDuplicatePayment
	}

	order := &models.Order{
		ID:          fmt.Sprintf("order-%d", len(m.byRef)+1),
		UserID:      userID,
		Status:      models.OrderStatusPending,
		PaymentRef:  &paymentRef,
		TotalAmount: decimal.New(amountMinor, -2),
	}
	for _, in := range items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   in.ProductID,
			ProductName: in.ProductName,
			Size:        in.Size,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			TotalPrice:  in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
		})
	}
	m.byRef[paymentRef] = order
	return order, nil
}

func (m *MockOrderStore) GetByID(context.Context, string) (*models.Order, error) {
	return nil, store.ErrOrderNotFound
}

func (m *MockOrderStore) ListByUser(context.Context, string) ([]models.Order, error) {
	return nil, nil
}

func (m *MockOrderStore) ListAll(context.Context, models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	for _, o := range m.byRef {
		orders = append(orders, *o)
	}
	return orders, nil
}

func (m *MockOrderStore) UpdateStatus(context.Context, string, models.OrderStatus) (*models.Order, error) {
	return nil, store.ErrOrderNotFound
}

func (m *MockOrderStore) Stats(context.Context) (*store.OrderStats, error) {
	return &store.OrderStats{}, nil
}

func setupWebhookRouter(t *testing.T, orders store.OrderStore) *gin.Engine {
	t.Setenv("PAYMENT_SECRET_KEY", "sk_test_123")
	t.Setenv("PAYMENT_WEBHOOK_SECRET", testWebhookSecret)

	client, err := payment.NewClientFromEnv()
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/payment/webhook", WebhookHandler(client, orders, nil))
	return r
}

func succeededEventPayload(t *testing.T, intentID string, amount int64, items []payment.LineItem) []byte {
	snapshot, err := json.Marshal(items)
	require.NoError(t, err)

	event := map[string]any{
		"id":      "evt_" + intentID,
		"type":    payment.EventTypePaymentSucceeded,
		"created": time.Now().Unix(),
		"data": map[string]any{
			"object": map[string]any{
				"id":       intentID,
				"amount":   amount,
				"currency": "usd",
				"status":   "succeeded",
				"metadata": map[string]string{
					"user_id": "u1",
					"items":   string(snapshot),
				},
			},
		},
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return payload
}

func deliver(r *gin.Engine, payload []byte, sigHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payment/webhook", bytes.NewReader(payload))
	if sigHeader != "" {
		req.Header.Set(payment.SignatureHeader, sigHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestWebhook_InvalidSignatureCreatesNothing(t *testing.T) {
	orders := NewMockOrderStore()
	r := setupWebhookRouter(t, orders)

	payload := succeededEventPayload(t, "pi_1", 10800, []payment.LineItem{
		{ID: "p1", Price: 50, Quantity: 2},
	})

	w := deliver(r, payload, payment.Sign(payload, "whsec_wrong", time.Now()))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, orders.CreateCalls)
}

func TestWebhook_MissingSignatureCreatesNothing(t *testing.T) {
	orders := NewMockOrderStore()
	r := setupWebhookRouter(t, orders)

	payload := succeededEventPayload(t, "pi_1", 10800, []payment.LineItem{
		{ID: "p1", Price: 50, Quantity: 2},
	})

	w := deliver(r, payload, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, orders.CreateCalls)
}

func TestWebhook_SucceededEventCreatesOrder(t *testing.T) {
	orders := NewMockOrderStore()
	r := setupWebhookRouter(t, orders)

	payload := succeededEventPayload(t, "pi_1", 10800, []payment.LineItem{
		{ID: "p1", Name: "Home Jersey", Price: 50.00, Quantity: 2, SelectedSize: "M"},
	})

	w := deliver(r, payload, payment.Sign(payload, testWebhookSecret, time.Now()))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())

	order := orders.byRef["pi_1"]
	require.NotNil(t, order)
	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromFloat(108.00)),
		"total %s", order.TotalAmount)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.NewFromFloat(50.00)))
	assert.True(t, order.Items[0].TotalPrice.Equal(decimal.NewFromFloat(100.00)))
}

func TestWebhook_EachCartLineBecomesAnOrderItem(t *testing.T) {
	orders := NewMockOrderStore()
	r := setupWebhookRouter(t, orders)

	payload := succeededEventPayload(t, "pi_2", 22680, []payment.LineItem{
		{ID: "p1", Name: "Home Jersey", Price: 50, Quantity: 2, SelectedSize: "M"},
		{ID: "p1", Name: "Home Jersey", Price: 50, Quantity: 1, SelectedSize: "L"},
		{ID: "p2", Name: "Away Jersey", Price: 60, Quantity: 1, SelectedSize: "S"},
	})

	w := deliver(r, payload, payment.Sign(payload, testWebhookSecret, time.Now()))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, orders.byRef["pi_2"])
	assert.Len(t, orders.byRef["pi_2"].Items, 3)
}

func TestWebhook_ReplayedEventIsIdempotent(t *testing.T) {
	orders := NewMockOrderStore()
	r := setupWebhookRouter(t, orders)

	payload := succeededEventPayload(t, "pi_1", 10800, []payment.LineItem{
		{ID: "p1", Price: 50, Quantity: 2},
	})

	first := deliver(r, payload, payment.Sign(payload, testWebhookSecret, time.Now()))
	second := deliver(r, payload, payment.Sign(payload, testWebhookSecret, time.Now()))

	// The provider delivers at-least-once; both deliveries ack, one order exists
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 2, orders.CreateCalls)
	assert.Len(t, orders.byRef, 1)
}

func TestWebhook_UnhandledEventTypeIsAcknowledged(t *testing.T) {
	orders := NewMockOrderStore()
	r := setupWebhookRouter(t, orders)

	payload := []byte(`{"id":"evt_x","type":"charge.refunded","data":{"object":{"id":"pi_9"}}}`)
	w := deliver(r, payload, payment.Sign(payload, testWebhookSecret, time.Now()))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())
	assert.Equal(t, 0, orders.CreateCalls)
}

func TestWebhook_PersistenceFailureStillAcks(t *testing.T) {
	orders := NewMockOrderStore()
	orders.CreateErr = errors.New("db down")
	r := setupWebhookRouter(t, orders)

	payload := succeededEventPayload(t, "pi_1", 10800, []payment.LineItem{
		{ID: "p1", Price: 50, Quantity: 2},
	})

	w := deliver(r, payload, payment.Sign(payload, testWebhookSecret, time.Now()))

	// Logged for the operator, never bounced back into a retry storm
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())
}

func TestWebhook_MalformedSnapshotStillAcks(t *testing.T) {
	orders := NewMockOrderStore()
	r := setupWebhookRouter(t, orders)

	payload := []byte(`{"id":"evt_b","type":"payment_intent.succeeded","data":{"object":{"id":"pi_b","amount":100,"metadata":{"user_id":"u1","items":"not json"}}}}`)
	w := deliver(r, payload, payment.Sign(payload, testWebhookSecret, time.Now()))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, orders.CreateCalls)
}
