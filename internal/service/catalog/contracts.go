package catalog

import (
	"context"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
)

// ActivityRepository интерфейс репозитория активностей
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) (*domain.Activity, error)
	Update(ctx context.Context, activity *domain.Activity) (*domain.Activity, error)
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	List(ctx context.Context, categoryID *string) ([]*domain.Activity, error)
	Delete(ctx context.Context, id string) error
}

// CategoryRepository интерфейс репозитория категорий
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.ActivityCategory) (*domain.ActivityCategory, error)
	GetByID(ctx context.Context, id string) (*domain.ActivityCategory, error)
	List(ctx context.Context) ([]*domain.ActivityCategory, error)
	Delete(ctx context.Context, id string) error
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) (*domain.Staff, error)
	Update(ctx context.Context, staff *domain.Staff) (*domain.Staff, error)
	GetByID(ctx context.Context, id string) (*domain.Staff, error)
	List(ctx context.Context) ([]*domain.Staff, error)
	Delete(ctx context.Context, id string) error
}

// TicketRepository интерфейс репозитория билетов
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context) ([]*domain.Ticket, error)
	Delete(ctx context.Context, id string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
