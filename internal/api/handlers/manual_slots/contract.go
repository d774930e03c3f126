package manual_slots

import (
	"context"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	"github.com/m04kA/RiverRun-BookingService/internal/service/slots/models"
)

type SlotEngine interface {
	CreateManualSlot(ctx context.Context, req *models.CreateSlotRequest) (*domain.Slot, error)
	DeleteManualSlot(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
