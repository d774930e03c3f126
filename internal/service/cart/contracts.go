package cart

import (
	"context"
	"time"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
)

// CartStore хранилище корзин
type CartStore interface {
	Get(ctx context.Context, token string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Update(ctx context.Context, token string, fn func(cart *domain.Cart) error) (*domain.Cart, error)
	TTL() time.Duration
}

// SlotFinder поиск слота по id с актуальным bookedCount
type SlotFinder interface {
	FindSlot(ctx context.Context, id string) (*domain.Slot, error)
}

// TicketRepository интерфейс репозитория билетов
type TicketRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
}

// CouponRepository интерфейс репозитория купонов
type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
}

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.SystemSettings, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
