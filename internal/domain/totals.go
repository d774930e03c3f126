package domain

import "github.com/shopspring/decimal"

// Totals итоговые суммы заказа
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// CalculateTotals считает суммы заказа:
// скидка ограничена [0, subtotal], налог начисляется на (subtotal - discount).
func CalculateTotals(items []BookingItem, coupon *Coupon, taxPercentage decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for i := range items {
		subtotal = subtotal.Add(items[i].LineTotal())
	}

	discount := coupon.Discount(subtotal)
	taxable := subtotal.Sub(discount)

	tax := decimal.Zero
	if taxPercentage.IsPositive() {
		tax = taxable.Mul(taxPercentage).Div(decimal.NewFromInt(100)).Round(2)
	}

	return Totals{
		Subtotal: subtotal.Round(2),
		Discount: discount,
		Tax:      tax,
		Total:    taxable.Add(tax).Round(2),
	}
}
