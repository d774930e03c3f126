package list_slots

import (
	"context"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

// SlotEngine движок слотов
type SlotEngine interface {
	SlotsForDate(ctx context.Context, date types.Date) ([]*domain.Slot, error)
}

// CartStore хранилище корзин
type CartStore interface {
	Get(ctx context.Context, token string) (*domain.Cart, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
