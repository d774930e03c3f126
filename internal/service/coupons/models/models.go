package models

import (
	"time"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
)

// CreateCouponRequest запрос на создание купона
type CreateCouponRequest struct {
	Code         string  `json:"code"`
	DiscountType string  `json:"discountType"`
	Value        float64 `json:"value"`
	IsActive     *bool   `json:"isActive,omitempty"` // по умолчанию true
}

// SetActiveRequest запрос на включение или отключение купона
type SetActiveRequest struct {
	IsActive *bool `json:"isActive"`
}

// CouponResponse ответ с данными купона
type CouponResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	DiscountType string    `json:"discountType"`
	Value        float64   `json:"value"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FromDomainCoupon конвертирует domain модель в DTO
func FromDomainCoupon(c *domain.Coupon) CouponResponse {
	return CouponResponse{
		ID:           c.ID,
		Code:         c.Code,
		DiscountType: string(c.DiscountType),
		Value:        c.Value.InexactFloat64(),
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
	}
}
