package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultAPIURL = "https://api.stripe.com"

// ErrNotConfigured is returned when the provider credentials are absent.
// Callers must handle it explicitly; there is no inert fallback client.
var ErrNotConfigured = errors.New("payment provider is not configured")

// Client talks to the payment provider's REST API and verifies its webhooks.
type Client struct {
	secretKey     string
	webhookSecret string
	apiURL        string
	httpClient    *http.Client
}

// NewClientFromEnv builds a client from PAYMENT_SECRET_KEY,
// PAYMENT_WEBHOOK_SECRET and optional PAYMENT_API_URL.
func NewClientFromEnv() (*Client, error) {
	secretKey := os.Getenv("PAYMENT_SECRET_KEY")
	webhookSecret := os.Getenv("PAYMENT_WEBHOOK_SECRET")
	if secretKey == "" || webhookSecret == "" {
		return nil, ErrNotConfigured
	}

	apiURL := os.Getenv("PAYMENT_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	return &Client{
		secretKey:     secretKey,
		webhookSecret: webhookSecret,
		apiURL:        strings.TrimRight(apiURL, "/"),
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// Intent is the provider's payment handle: an authorized-but-unsettled charge.
type Intent struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"client_secret"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Status       string            `json:"status"`
	Metadata     map[string]string `json:"metadata"`
}

type IntentParams struct {
	Amount       int64 // minor currency units
	Currency     string
	ReceiptEmail string
	Metadata     map[string]string
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreatePaymentIntent requests a payment handle from the provider. Metadata
// rides on the intent and comes back verbatim on the webhook event.
func (c *Client) CreatePaymentIntent(ctx context.Context, p IntentParams) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(p.Amount, 10))
	form.Set("currency", p.Currency)
	if p.ReceiptEmail != "" {
		form.Set("receipt_email", p.ReceiptEmail)
	}
	for k, v := range p.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment provider: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if jsonErr := json.Unmarshal(body, &apiErr); jsonErr == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("payment provider error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("payment provider error (%d): %s", resp.StatusCode, string(body))
	}

	var intent Intent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("failed to parse provider response: %w", err)
	}
	if intent.ClientSecret == "" {
		return nil, errors.New("payment provider returned empty client secret")
	}
	return &intent, nil
}
