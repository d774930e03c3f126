package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType тип скидки купона
type DiscountType string

const (
	DiscountPercent DiscountType = "PERCENT"
	DiscountFixed   DiscountType = "FIXED"
)

// IsValid returns true for a known discount type
func (t DiscountType) IsValid() bool {
	return t == DiscountPercent || t == DiscountFixed
}

// Coupon промокод
type Coupon struct {
	ID           string
	Code         string // всегда в верхнем регистре
	DiscountType DiscountType
	Value        decimal.Decimal
	IsActive     bool
	CreatedAt    time.Time
}

// NormalizeCouponCode приводит код к каноническому виду: без пробелов по краям, в верхнем регистре
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Discount считает скидку для суммы. Результат всегда в диапазоне [0, subtotal].
func (c *Coupon) Discount(subtotal decimal.Decimal) decimal.Decimal {
	if c == nil || !c.IsActive || !subtotal.IsPositive() {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch c.DiscountType {
	case DiscountPercent:
		discount = subtotal.Mul(c.Value).Div(decimal.NewFromInt(100))
	case DiscountFixed:
		discount = c.Value
	default:
		return decimal.Zero
	}

	if discount.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount.Round(2)
}
