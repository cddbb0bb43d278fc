package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rangsey10/sport-jerseys-api/models"
)

func TestBuildOrder_Validation(t *testing.T) {
	items := []OrderItemInput{
		{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
	}

	_, err := buildOrder("", items, nil)
	assert.ErrorIs(t, err, ErrNoUser)

	_, err = buildOrder("u1", nil, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestBuildOrder_LineTotals(t *testing.T) {
	order, err := buildOrder("u1", []OrderItemInput{
		{ProductID: "p1", ProductName: "Home Jersey", Size: "M", Quantity: 2, UnitPrice: decimal.NewFromFloat(50.00)},
		{ProductID: "p2", ProductName: "Away Jersey", Size: "S", Quantity: 3, UnitPrice: decimal.NewFromFloat(19.99)},
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].TotalPrice.Equal(decimal.NewFromFloat(100.00)),
		"got %s", order.Items[0].TotalPrice)
	assert.True(t, order.Items[1].TotalPrice.Equal(decimal.NewFromFloat(59.97)),
		"got %s", order.Items[1].TotalPrice)
}

func TestBuildOrder_ShippingAddress(t *testing.T) {
	addr := &models.ShippingAddress{
		FirstName: "Ada",
		City:      "London",
	}

	order, err := buildOrder("u1", []OrderItemInput{
		{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
	}, addr)

	require.NoError(t, err)
	assert.Equal(t, "Ada", order.ShippingAddress.FirstName)
	assert.Equal(t, "London", order.ShippingAddress.City)
}
