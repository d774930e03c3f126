package get_booking_qr

import (
	"context"

	"github.com/m04kA/RiverRun-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	QRCodePNG(ctx context.Context, id string, caller models.Caller, size int) ([]byte, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
