package schedule_rules

import (
	"context"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	createRule "github.com/m04kA/RiverRun-BookingService/internal/usecase/create_schedule_rule"
	generateRules "github.com/m04kA/RiverRun-BookingService/internal/usecase/generate_schedule_rules"
)

type RuleEngine interface {
	ListRules(ctx context.Context, activityID *string) ([]*domain.ScheduleRule, error)
	DeleteRule(ctx context.Context, id string) error
}

type CreateRuleUseCase interface {
	Execute(ctx context.Context, req *createRule.Request) (*createRule.Response, error)
}

type GenerateRulesUseCase interface {
	Execute(ctx context.Context, req *generateRules.Request) (*generateRules.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
