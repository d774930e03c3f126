package coupons

import (
	"context"

	"github.com/m04kA/RiverRun-BookingService/internal/service/coupons/models"
)

type CouponService interface {
	List(ctx context.Context) ([]models.CouponResponse, error)
	GetByCode(ctx context.Context, code string) (*models.CouponResponse, error)
	Create(ctx context.Context, req *models.CreateCouponRequest) (*models.CouponResponse, error)
	SetActive(ctx context.Context, id string, req *models.SetActiveRequest) error
	Delete(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
