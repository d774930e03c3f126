package carts

import (
	"context"

	"github.com/m04kA/RiverRun-BookingService/internal/service/cart/models"
)

type CartService interface {
	Create(ctx context.Context, userID string) (*models.CartResponse, error)
	Get(ctx context.Context, token, userID string) (*models.CartResponse, error)
	AddItem(ctx context.Context, token, userID string, req *models.AddItemRequest) (*models.CartResponse, error)
	RemoveItem(ctx context.Context, token, userID, itemID string) (*models.CartResponse, error)
	ApplyCoupon(ctx context.Context, token, userID string, req *models.ApplyCouponRequest) (*models.CartResponse, error)
	RemoveCoupon(ctx context.Context, token, userID string) (*models.CartResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
