package create_booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	"github.com/m04kA/RiverRun-BookingService/internal/integrations/userservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	LockSlots(ctx context.Context, slotIDs []string) error
	ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error)
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

// CartStore хранилище корзин
type CartStore interface {
	Get(ctx context.Context, token string) (*domain.Cart, error)
	Delete(ctx context.Context, token string) error
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID string) (*userservice.User, error)
}

// PaymentVerifier проверка онлайн-оплаты. nil, если платёжный сервис отключен.
type PaymentVerifier interface {
	VerifyPayment(ctx context.Context, transactionID string, amount decimal.Decimal) error
}

// QRSigner подписывает содержимое QR-кода бронирования
type QRSigner interface {
	Sign(bookingID string) string
}

// Metrics счётчики продаж
type Metrics interface {
	IncBookingCreated(channel string)
	IncCapacityConflict()
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
