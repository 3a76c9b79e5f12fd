package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func item(id string, qty int, unit int64) LineItem {
	return LineItem{
		ProductID: id,
		Name:      "product " + id,
		Quantity:  qty,
		UnitPrice: unit,
		Subtotal:  int64(qty) * unit,
	}
}

func TestCalculateTotalsEmptyCart(t *testing.T) {
	totals := CalculateTotals(nil, NoDiscount())

	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.DiscountAmount)
	assert.Zero(t, totals.Total)
	assert.Zero(t, totals.ItemCount)
	assert.False(t, totals.HasItems)
}

func TestCalculateTotalsSumsItems(t *testing.T) {
	items := []LineItem{
		item("p1", 2, 1500),
		item("p2", 1, 9990),
		item("p3", 3, 250),
	}

	totals := CalculateTotals(items, NoDiscount())

	assert.Equal(t, int64(2*1500+9990+3*250), totals.Subtotal)
	assert.Equal(t, totals.Subtotal, totals.Total)
	assert.Equal(t, 6, totals.ItemCount)
	assert.True(t, totals.HasItems)
}

func TestCalculateTotalsPercentageDiscount(t *testing.T) {
	items := []LineItem{item("p1", 1, 20000)}

	totals := CalculateTotals(items, Discount{Kind: DiscountPercentage, Value: 10})

	assert.Equal(t, int64(20000), totals.Subtotal)
	assert.Equal(t, int64(2000), totals.DiscountAmount)
	assert.Equal(t, int64(18000), totals.Total)
}

func TestCalculateTotalsFixedDiscountClampedToSubtotal(t *testing.T) {
	items := []LineItem{item("p1", 1, 500)}

	totals := CalculateTotals(items, Discount{Kind: DiscountFixed, Value: 1000})

	assert.Equal(t, int64(500), totals.DiscountAmount)
	assert.Equal(t, int64(0), totals.Total)
}

func TestCalculateTotalsFixedDiscountBelowSubtotal(t *testing.T) {
	items := []LineItem{item("p1", 2, 1000)}

	totals := CalculateTotals(items, Discount{Kind: DiscountFixed, Value: 300})

	assert.Equal(t, int64(300), totals.DiscountAmount)
	assert.Equal(t, int64(1700), totals.Total)
}

func TestCalculateTotalsNoneKindIgnoresValue(t *testing.T) {
	items := []LineItem{item("p1", 1, 1000)}

	totals := CalculateTotals(items, Discount{Kind: DiscountNone, Value: 9999})

	assert.Zero(t, totals.DiscountAmount)
	assert.Equal(t, int64(1000), totals.Total)
}

func TestCalculateTotalsZeroValueDiscount(t *testing.T) {
	items := []LineItem{item("p1", 1, 1000)}

	for _, kind := range []DiscountKind{DiscountPercentage, DiscountFixed} {
		totals := CalculateTotals(items, Discount{Kind: kind, Value: 0})
		assert.Zero(t, totals.DiscountAmount, "kind %s", kind)
	}
}

func TestCalculateTotalsHundredPercent(t *testing.T) {
	items := []LineItem{item("p1", 3, 333)}

	totals := CalculateTotals(items, Discount{Kind: DiscountPercentage, Value: 100})

	assert.Equal(t, totals.Subtotal, totals.DiscountAmount)
	assert.Zero(t, totals.Total)
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentCash, PaymentCredit, PaymentDebit, PaymentPix, PaymentMultiple} {
		assert.True(t, ValidPaymentMethod(m))
	}
	assert.False(t, ValidPaymentMethod("cheque"))
	assert.False(t, ValidPaymentMethod(""))
}

func TestCloneItemsDetachesBackingArray(t *testing.T) {
	items := []LineItem{item("p1", 1, 100)}
	dup := CloneItems(items)
	dup[0].Quantity = 9

	assert.Equal(t, 1, items[0].Quantity)
	assert.NotNil(t, CloneItems(nil))
	assert.Empty(t, CloneItems(nil))
}
