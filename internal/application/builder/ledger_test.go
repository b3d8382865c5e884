package builder

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solines/hotelquote-api/internal/domain/entity"
	"github.com/solines/hotelquote-api/internal/domain/enum"
)

func testProduct(name string, salePrice float64, costPrice *float64) entity.Product {
	return entity.Product{
		ID:        uuid.New(),
		Name:      name,
		SalePrice: salePrice,
		CostPrice: costPrice,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestLedgerAddOrMerge(t *testing.T) {
	towels := testProduct("Bath Towels", 12.50, floatPtr(7.00))
	soap := testProduct("Hand Soap", 3.00, nil)

	l := NewLedger()
	l.AddOrMerge(towels, 2)
	l.AddOrMerge(soap, 1)
	l.AddOrMerge(towels, 3)

	items := l.Items()
	require.Len(t, items, 2)
	assert.Equal(t, towels.ID, items[0].Product.ID)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 62.50, items[0].TotalPrice)
	assert.Equal(t, soap.ID, items[1].Product.ID)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestLedgerAddOrMergeIgnoresNonPositiveQuantity(t *testing.T) {
	towels := testProduct("Bath Towels", 12.50, nil)

	l := NewLedger()
	l.AddOrMerge(towels, 0)
	l.AddOrMerge(towels, -4)

	assert.Equal(t, 0, l.Len())
}

func TestLedgerPinsUnitPriceAtInsertion(t *testing.T) {
	towels := testProduct("Bath Towels", 12.50, nil)

	l := NewLedger()
	l.AddOrMerge(towels, 2)

	// A catalog price change must not move an open quote
	towels.SalePrice = 99.99
	l.AddOrMerge(towels, 3)

	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 12.50, items[0].UnitSalePrice)
	assert.Equal(t, 62.50, items[0].TotalPrice)
}

func TestLedgerUpdateQuantity(t *testing.T) {
	towels := testProduct("Bath Towels", 10.00, nil)

	l := NewLedger()
	l.AddOrMerge(towels, 2)
	l.UpdateQuantity(towels.ID, 7)

	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
	assert.Equal(t, 70.00, items[0].TotalPrice)
}

func TestLedgerUpdateQuantityZeroRemoves(t *testing.T) {
	towels := testProduct("Bath Towels", 10.00, nil)
	soap := testProduct("Hand Soap", 3.00, nil)

	l := NewLedger()
	l.AddOrMerge(towels, 2)
	l.AddOrMerge(soap, 1)

	l.UpdateQuantity(towels.ID, 0)

	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, soap.ID, items[0].Product.ID)

	l.UpdateQuantity(soap.ID, -1)
	assert.Equal(t, 0, l.Len())
}

func TestLedgerUpdateQuantityUnknownProductIsNoop(t *testing.T) {
	towels := testProduct("Bath Towels", 10.00, nil)

	l := NewLedger()
	l.AddOrMerge(towels, 2)
	l.UpdateQuantity(uuid.New(), 5)

	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestLedgerRemovePreservesOrder(t *testing.T) {
	a := testProduct("A", 1.00, nil)
	b := testProduct("B", 2.00, nil)
	c := testProduct("C", 3.00, nil)

	l := NewLedger()
	l.AddOrMerge(a, 1)
	l.AddOrMerge(b, 1)
	l.AddOrMerge(c, 1)

	l.Remove(b.ID)

	items := l.Items()
	require.Len(t, items, 2)
	assert.Equal(t, a.ID, items[0].Product.ID)
	assert.Equal(t, c.ID, items[1].Product.ID)
}

func TestLedgerSetDiscountTier(t *testing.T) {
	l := NewLedger()
	assert.Equal(t, enum.DiscountNone, l.DiscountTier())

	require.NoError(t, l.SetDiscountTier(enum.DiscountTen))
	assert.Equal(t, enum.DiscountTen, l.DiscountTier())

	err := l.SetDiscountTier(enum.DiscountTier("25%"))
	require.Error(t, err)
	assert.Equal(t, enum.DiscountTen, l.DiscountTier())
}

func TestLedgerTotalsWithDiscount(t *testing.T) {
	towels := testProduct("Bath Towels", 12.50, floatPtr(7.00))

	l := NewLedger()
	l.AddOrMerge(towels, 2)
	require.NoError(t, l.SetDiscountTier(enum.DiscountTen))

	totals := l.Totals(enum.RoleAdmin)
	assert.Equal(t, 25.00, totals.Subtotal)
	assert.InDelta(t, 22.50, totals.GrandTotal, 1e-9)
}

func TestLedgerTotalsCostAndMarginForAdmin(t *testing.T) {
	towels := testProduct("Bath Towels", 10.00, floatPtr(6.00))
	soap := testProduct("Hand Soap", 5.00, nil) // missing cost counts as zero

	l := NewLedger()
	l.AddOrMerge(towels, 2)
	l.AddOrMerge(soap, 2)

	totals := l.Totals(enum.RoleAdmin)
	require.NotNil(t, totals.TotalCost)
	require.NotNil(t, totals.ProfitMargin)
	assert.Equal(t, 30.00, totals.GrandTotal)
	assert.Equal(t, 12.00, *totals.TotalCost)
	assert.InDelta(t, 0.6, *totals.ProfitMargin, 1e-9)
}

func TestLedgerTotalsHideCostForEmployee(t *testing.T) {
	towels := testProduct("Bath Towels", 10.00, floatPtr(6.00))

	l := NewLedger()
	l.AddOrMerge(towels, 2)

	totals := l.Totals(enum.RoleEmployee)
	assert.Equal(t, 20.00, totals.Subtotal)
	assert.Nil(t, totals.TotalCost)
	assert.Nil(t, totals.ProfitMargin)
}

func TestLedgerTotalsEmptyLedgerMarginIsZero(t *testing.T) {
	l := NewLedger()

	totals := l.Totals(enum.RoleAdmin)
	assert.Equal(t, 0.00, totals.Subtotal)
	assert.Equal(t, 0.00, totals.GrandTotal)
	require.NotNil(t, totals.ProfitMargin)
	assert.Equal(t, 0.0, *totals.ProfitMargin)
}
