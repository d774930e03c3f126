package scan_booking

import (
	"context"

	"github.com/m04kA/RiverRun-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	MarkScanned(ctx context.Context, id string) (*models.BookingResponse, error)
	ScanPayload(ctx context.Context, payload string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
