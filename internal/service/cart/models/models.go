package models

import (
	"time"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
)

// AddItemRequest запрос на добавление позиции
type AddItemRequest struct {
	Type        string `json:"type"`
	ReferenceID string `json:"referenceId"`
	Quantity    int    `json:"quantity"`
}

// ApplyCouponRequest запрос на применение купона
type ApplyCouponRequest struct {
	Code string `json:"code"`
}

// CartItemResponse позиция корзины
type CartItemResponse struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	ReferenceID string  `json:"referenceId"`
	Title       string  `json:"title"`
	Subtitle    string  `json:"subtitle,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// CartResponse корзина с расчётом сумм
type CartResponse struct {
	Token      string             `json:"token"`
	Items      []CartItemResponse `json:"items"`
	CouponCode *string            `json:"couponCode,omitempty"`

	Subtotal      float64 `json:"subtotal"`
	Discount      float64 `json:"discount"`
	TaxPercentage float64 `json:"taxPercentage"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`

	ExpiresAt time.Time `json:"expiresAt"`
}

// FromDomainCart конвертирует корзину и расчёт сумм в DTO
func FromDomainCart(c *domain.Cart, totals domain.Totals, taxPercentage float64, expiresAt time.Time) *CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, CartItemResponse{
			ID:          item.ID,
			Type:        string(item.Type),
			ReferenceID: item.ReferenceID,
			Title:       item.Title,
			Subtitle:    item.Subtitle,
			Quantity:    item.Quantity,
			Price:       item.Price.InexactFloat64(),
		})
	}

	return &CartResponse{
		Token:         c.Token,
		Items:         items,
		CouponCode:    c.CouponCode,
		Subtotal:      totals.Subtotal.InexactFloat64(),
		Discount:      totals.Discount.InexactFloat64(),
		TaxPercentage: taxPercentage,
		Tax:           totals.Tax.InexactFloat64(),
		Total:         totals.Total.InexactFloat64(),
		ExpiresAt:     expiresAt,
	}
}
