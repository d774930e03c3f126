package generate_schedule_rules

import (
	"context"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	createRule "github.com/m04kA/RiverRun-BookingService/internal/usecase/create_schedule_rule"
)

// ActivityRepository интерфейс репозитория активностей
type ActivityRepository interface {
	List(ctx context.Context, categoryID *string) ([]*domain.Activity, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	List(ctx context.Context) ([]*domain.Staff, error)
}

// RuleCreator создание одного правила со всеми проверками
type RuleCreator interface {
	Execute(ctx context.Context, req *createRule.Request) (*createRule.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
