package domain

// Totals captures the derived monetary view of a cart. It is recomputed
// from the current items and discount on every read and carries no state
// of its own.
type Totals struct {
	Subtotal       int64
	DiscountAmount int64
	Total          int64
	ItemCount      int
	HasItems       bool
}

// CalculateTotals derives subtotal, discount amount, total, and item count
// from the given line items and discount descriptor. All amounts are minor
// currency units, so repeated accumulation is exact.
//
// The discount amount never exceeds the subtotal and the total never drops
// below zero, regardless of the stored discount value.
func CalculateTotals(items []LineItem, discount Discount) Totals {
	var subtotal int64
	var count int
	for _, item := range items {
		subtotal += item.Subtotal
		count += item.Quantity
	}

	amount := discountAmount(subtotal, discount)
	total := subtotal - amount
	if total < 0 {
		total = 0
	}

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: amount,
		Total:          total,
		ItemCount:      count,
		HasItems:       len(items) > 0,
	}
}

func discountAmount(subtotal int64, discount Discount) int64 {
	if discount.Kind == DiscountNone || discount.Value <= 0 {
		return 0
	}
	switch discount.Kind {
	case DiscountPercentage:
		return subtotal * discount.Value / 100
	case DiscountFixed:
		if discount.Value > subtotal {
			return subtotal
		}
		return discount.Value
	}
	return 0
}
