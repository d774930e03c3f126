package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	ruleRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/rule"
)

// ListRules возвращает правила расписания, опционально только для одной активности
func (e *Engine) ListRules(ctx context.Context, activityID *string) ([]*domain.ScheduleRule, error) {
	var (
		rules []*domain.ScheduleRule
		err   error
	)
	if activityID != nil && *activityID != "" {
		rules, err = e.ruleRepo.ListByActivity(ctx, *activityID)
	} else {
		rules, err = e.ruleRepo.List(ctx)
	}
	if err != nil {
		e.logger.Error("ListRules: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRules - repository error: %w", ErrInternal, err)
	}

	return rules, nil
}

// DeleteRule удаляет правило. Его слоты исчезают из выдачи сразу, проданные бронирования не меняются.
func (e *Engine) DeleteRule(ctx context.Context, id string) error {
	e.logger.Info("DeleteRule: rule id=%s", id)

	if err := e.ruleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			e.logger.Warn("DeleteRule: rule id=%s not found", id)
			return ErrRuleNotFound
		}
		e.logger.Error("DeleteRule: failed to delete rule id=%s: %v", id, err)
		return fmt.Errorf("%w: DeleteRule - repository error: %w", ErrInternal, err)
	}

	e.logger.Info("DeleteRule: deleted rule id=%s", id)
	return nil
}
