package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader carries the provider's webhook signature.
const SignatureHeader = "Stripe-Signature"

// signatureTolerance bounds how old a signed timestamp may be, to blunt
// replay of captured deliveries.
const signatureTolerance = 5 * time.Minute

// EventTypePaymentSucceeded is the only event type this system acts on.
// Everything else is acknowledged and ignored.
const EventTypePaymentSucceeded = "payment_intent.succeeded"

var ErrInvalidSignature = errors.New("webhook signature verification failed")

// Event is a provider webhook delivery.
type Event struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
	Data    struct {
		Object PaymentIntent `json:"object"`
	} `json:"data"`
}

// PaymentIntent is the event payload object for payment_intent.* events.
type PaymentIntent struct {
	ID           string            `json:"id"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Status       string            `json:"status"`
	ReceiptEmail string            `json:"receipt_email"`
	Metadata     map[string]string `json:"metadata"`
}

// ConstructEvent verifies the signature over the raw payload and only then
// parses it. The payload must be the unmodified request body; any earlier
// parsing breaks verification.
func (c *Client) ConstructEvent(payload []byte, sigHeader string) (Event, error) {
	var event Event
	if err := verifySignature(payload, sigHeader, c.webhookSecret, time.Now()); err != nil {
		return event, err
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return event, fmt.Errorf("failed to parse webhook payload: %w", err)
	}
	return event, nil
}

// Sign produces a signature header for payload, as the provider would.
// Used when simulating deliveries against a test or staging endpoint.
func Sign(payload []byte, secret string, at time.Time) string {
	ts := at.Unix()
	return fmt.Sprintf("t=%d,v1=%s", ts, computeSignature(payload, secret, ts))
}

func computeSignature(payload []byte, secret string, ts int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// verifySignature checks a "t=<unix>,v1=<hex>" header against the shared
// secret. Multiple v1 entries are accepted if any matches (the provider sends
// several during secret rotation).
func verifySignature(payload []byte, sigHeader, secret string, now time.Time) error {
	if sigHeader == "" {
		return fmt.Errorf("%w: missing signature header", ErrInvalidSignature)
	}

	var ts int64 = -1
	var candidates []string
	for _, part := range strings.Split(sigHeader, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch k {
		case "t":
			parsed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fmt.Errorf("%w: malformed timestamp", ErrInvalidSignature)
			}
			ts = parsed
		case "v1":
			candidates = append(candidates, v)
		}
	}

	if ts < 0 || len(candidates) == 0 {
		return fmt.Errorf("%w: malformed signature header", ErrInvalidSignature)
	}

	age := now.Sub(time.Unix(ts, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return fmt.Errorf("%w: timestamp outside tolerance", ErrInvalidSignature)
	}

	expected := computeSignature(payload, secret, ts)
	for _, candidate := range candidates {
		if hmac.Equal([]byte(expected), []byte(candidate)) {
			return nil
		}
	}
	return ErrInvalidSignature
}
