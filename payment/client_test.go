package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientFromEnv_NotConfigured(t *testing.T) {
	t.Setenv("PAYMENT_SECRET_KEY", "")
	t.Setenv("PAYMENT_WEBHOOK_SECRET", "")

	client, err := NewClientFromEnv()

	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewClientFromEnv_MissingWebhookSecret(t *testing.T) {
	t.Setenv("PAYMENT_SECRET_KEY", "sk_test_123")
	t.Setenv("PAYMENT_WEBHOOK_SECRET", "")

	_, err := NewClientFromEnv()

	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCreatePaymentIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "10800", r.PostFormValue("amount"))
		assert.Equal(t, "usd", r.PostFormValue("currency"))
		assert.Equal(t, "a@b.com", r.PostFormValue("receipt_email"))
		assert.Equal(t, "u1", r.PostFormValue("metadata[user_id]"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_1","client_secret":"pi_1_secret_x","amount":10800,"currency":"usd","status":"requires_payment_method"}`))
	}))
	defer server.Close()

	t.Setenv("PAYMENT_SECRET_KEY", "sk_test_123")
	t.Setenv("PAYMENT_WEBHOOK_SECRET", "whsec_x")
	t.Setenv("PAYMENT_API_URL", server.URL)

	client, err := NewClientFromEnv()
	require.NoError(t, err)

	intent, err := client.CreatePaymentIntent(context.Background(), IntentParams{
		Amount:       10800,
		Currency:     "usd",
		ReceiptEmail: "a@b.com",
		Metadata:     map[string]string{"user_id": "u1"},
	})

	require.NoError(t, err)
	assert.Equal(t, "pi_1", intent.ID)
	assert.Equal(t, "pi_1_secret_x", intent.ClientSecret)
	assert.Equal(t, int64(10800), intent.Amount)
}

func TestCreatePaymentIntent_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"type":"card_error","message":"Your card was declined."}}`))
	}))
	defer server.Close()

	t.Setenv("PAYMENT_SECRET_KEY", "sk_test_123")
	t.Setenv("PAYMENT_WEBHOOK_SECRET", "whsec_x")
	t.Setenv("PAYMENT_API_URL", server.URL)

	client, err := NewClientFromEnv()
	require.NoError(t, err)

	_, err = client.CreatePaymentIntent(context.Background(), IntentParams{Amount: 100, Currency: "usd"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "card was declined")
}

func TestCreatePaymentIntent_EmptyClientSecret(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"pi_1"}`))
	}))
	defer server.Close()

	t.Setenv("PAYMENT_SECRET_KEY", "sk_test_123")
	t.Setenv("PAYMENT_WEBHOOK_SECRET", "whsec_x")
	t.Setenv("PAYMENT_API_URL", server.URL)

	client, err := NewClientFromEnv()
	require.NoError(t, err)

	_, err = client.CreatePaymentIntent(context.Background(), IntentParams{Amount: 100, Currency: "usd"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty client secret")
}
