package slots

import (
	"context"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

// RuleRepository интерфейс репозитория правил расписания
type RuleRepository interface {
	ListActiveOn(ctx context.Context, date types.Date) ([]*domain.ScheduleRule, error)
	ListByActivity(ctx context.Context, activityID string) ([]*domain.ScheduleRule, error)
	List(ctx context.Context) ([]*domain.ScheduleRule, error)
	Delete(ctx context.Context, id string) error
}

// SlotRepository интерфейс репозитория ручных слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	GetByID(ctx context.Context, id string) (*domain.Slot, error)
	GetByDate(ctx context.Context, date types.Date) ([]*domain.Slot, error)
	Delete(ctx context.Context, id string) error
}

// ActivityRepository интерфейс репозитория активностей
type ActivityRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Activity, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetBookedQuantities(ctx context.Context, slotIDs []string) (map[string]int, error)
}

// Metrics счётчики движка слотов
type Metrics interface {
	AddGeneratedSlots(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
