package create_schedule_rule

import (
	"context"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
)

// ActivityRepository интерфейс репозитория активностей
type ActivityRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
}

// RuleRepository интерфейс репозитория правил расписания
type RuleRepository interface {
	Create(ctx context.Context, rule *domain.ScheduleRule) (*domain.ScheduleRule, error)
	ListByActivity(ctx context.Context, activityID string) ([]*domain.ScheduleRule, error)
	LockActivity(ctx context.Context, activityID string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
