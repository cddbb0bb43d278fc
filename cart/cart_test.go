package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(productID, size string, price float64, qty int) Item {
	return Item{
		ProductID: productID,
		Size:      size,
		UnitPrice: decimal.NewFromFloat(price),
		Quantity:  qty,
	}
}

func TestAdd_MergesSameProductAndSize(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.Add("u1", item("p1", "M", 50, 1)))
	require.NoError(t, s.Add("u1", item("p1", "M", 50, 2)))

	items := s.Items("u1")
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAdd_SameProductDifferentSizeIsSeparateLine(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.Add("u1", item("p1", "M", 50, 1)))
	require.NoError(t, s.Add("u1", item("p1", "L", 50, 1)))

	assert.Len(t, s.Items("u1"), 2)
}

func TestAdd_Validation(t *testing.T) {
	s := NewStore()

	assert.ErrorIs(t, s.Add("u1", item("p1", "", 50, 1)), ErrMissingSize)
	assert.ErrorIs(t, s.Add("u1", item("p1", "M", 50, 0)), ErrInvalidQuantity)
	assert.ErrorIs(t, s.Add("u1", item("p1", "M", 50, -2)), ErrInvalidQuantity)
	assert.Empty(t, s.Items("u1"))
}

func TestUpdateQuantity(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add("u1", item("p1", "M", 50, 1)))

	require.NoError(t, s.UpdateQuantity("u1", "p1", "M", 5))
	assert.Equal(t, 5, s.Items("u1")[0].Quantity)

	assert.ErrorIs(t, s.UpdateQuantity("u1", "p2", "M", 1), ErrItemNotFound)
	assert.ErrorIs(t, s.UpdateQuantity("u1", "p1", "M", -1), ErrInvalidQuantity)
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add("u1", item("p1", "M", 50, 2)))

	require.NoError(t, s.UpdateQuantity("u1", "p1", "M", 0))

	assert.Empty(t, s.Items("u1"))
}

func TestRemove(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add("u1", item("p1", "M", 50, 1)))
	require.NoError(t, s.Add("u1", item("p1", "L", 50, 1)))

	require.NoError(t, s.Remove("u1", "p1", "M"))

	items := s.Items("u1")
	require.Len(t, items, 1)
	assert.Equal(t, "L", items[0].Size)

	assert.ErrorIs(t, s.Remove("u1", "p1", "M"), ErrItemNotFound)
}

func TestClear(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add("u1", item("p1", "M", 50, 1)))

	s.Clear("u1")

	assert.Empty(t, s.Items("u1"))
	assert.True(t, s.Subtotal("u1").IsZero())
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add("u1", item("p1", "M", 50, 1)))

	assert.Empty(t, s.Items("u2"))
	s.Clear("u2")
	assert.Len(t, s.Items("u1"), 1)
}

func TestSubtotal(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add("u1", item("p1", "M", 19.99, 3)))
	require.NoError(t, s.Add("u1", item("p2", "S", 0.01, 1)))

	assert.True(t, s.Subtotal("u1").Equal(decimal.NewFromFloat(59.98)),
		"got %s", s.Subtotal("u1"))
}

func TestItems_ReturnsCopy(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add("u1", item("p1", "M", 50, 1)))

	items := s.Items("u1")
	items[0].Quantity = 99

	assert.Equal(t, 1, s.Items("u1")[0].Quantity)
}
