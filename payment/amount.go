package payment

import (
	"errors"

	"github.com/shopspring/decimal"
)

// taxMultiplier is the fixed sales tax applied to the item subtotal.
var taxMultiplier = decimal.NewFromFloat(1.08)

var (
	ErrNoItems     = errors.New("missing or invalid items")
	ErrInvalidItem = errors.New("malformed cart item")
)

// LineItem is one cart line as submitted by the checkout page. The same shape
// is serialized into the intent metadata so the webhook can rebuild the order
// without a second trip to the cart.
type LineItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Image        string  `json:"image,omitempty"`
	SelectedSize string  `json:"selected_size,omitempty"`
	Price        float64 `json:"price"`
	Quantity     int64   `json:"quantity"`
}

func (it LineItem) Validate() error {
	if it.ID == "" || it.Quantity <= 0 || it.Price < 0 {
		return ErrInvalidItem
	}
	return nil
}

// UnitPrice returns the line's unit price as an exact decimal.
func (it LineItem) UnitPrice() decimal.Decimal {
	return decimal.NewFromFloat(it.Price)
}

// ValidateLineItems rejects empty or malformed carts before any provider call.
func ValidateLineItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TotalMinorUnits computes the authoritative payable amount in minor currency
// units: round(sum(price*quantity) * 1.08 * 100). Client totals are never
// trusted; this is recomputed from the line prices on every checkout.
func TotalMinorUnits(items []LineItem) int64 {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.UnitPrice().Mul(decimal.NewFromInt(it.Quantity)))
	}
	return subtotal.Mul(taxMultiplier).Shift(2).Round(0).IntPart()
}
