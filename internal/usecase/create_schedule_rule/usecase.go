package create_schedule_rule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	activityRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/activity"
)

// UseCase use case для создания правила расписания
type UseCase struct {
	activityRepo ActivityRepository
	ruleRepo     RuleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	activityRepo ActivityRepository,
	ruleRepo RuleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		activityRepo: activityRepo,
		ruleRepo:     ruleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case создания правила. Правило начинает действовать сразу:
// его слоты появляются в выдаче при следующем чтении.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateScheduleRule: activity=%s, range=%s..%s, window=%s-%s, pattern=%s",
		req.ActivityID, req.StartDate, req.EndDate, req.StartTime, req.EndTime, req.Pattern)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateScheduleRule: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем активность
	activity, err := uc.activityRepo.GetByID(ctx, req.ActivityID)
	if err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			uc.logger.Warn("CreateScheduleRule: activity id=%s not found", req.ActivityID)
			return nil, ErrActivityNotFound
		}
		uc.logger.Error("CreateScheduleRule: failed to get activity id=%s: %v", req.ActivityID, err)
		return nil, fmt.Errorf("%w: failed to get activity: %w", ErrInternal, err)
	}

	// 3. Проверки относительно активности
	if err := validateAgainstActivity(req, activity); err != nil {
		uc.logger.Warn("CreateScheduleRule: activity validation failed: %v", err)
		return nil, err
	}

	// Цена и вместимость фиксируются на момент создания
	rule := &domain.ScheduleRule{
		ID:         uuid.NewString(),
		ActivityID: activity.ID,
		StaffIDs:   req.StaffIDs,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Pattern:    req.Pattern,
		CustomDays: req.CustomDays,
		Price:      activity.Price,
		Capacity:   activity.CapacityPerSlot,
	}

	// 4. Проверка пересечений и сохранение под блокировкой активности
	var created *domain.ScheduleRule
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.ruleRepo.LockActivity(txCtx, activity.ID); err != nil {
			return fmt.Errorf("%w: failed to lock activity: %w", ErrInternal, err)
		}

		existing, err := uc.ruleRepo.ListByActivity(txCtx, activity.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to list rules: %w", ErrInternal, err)
		}
		for _, other := range existing {
			if rule.Overlaps(other) {
				uc.logger.Warn("CreateScheduleRule: overlaps rule id=%s for activity id=%s", other.ID, activity.ID)
				return fmt.Errorf("%w: conflicts with rule %s", ErrRuleOverlap, other.ID)
			}
		}

		created, err = uc.ruleRepo.Create(txCtx, rule)
		if err != nil {
			return fmt.Errorf("%w: failed to create rule: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrRuleOverlap) {
			uc.logger.Error("CreateScheduleRule: %v", err)
		}
		return nil, err
	}

	slotsPerDay := (created.EndTime.Minutes() - created.StartTime.Minutes()) / activity.DurationMinutes

	uc.logger.Info("CreateScheduleRule: created rule id=%s, slots_per_day=%d", created.ID, slotsPerDay)

	return &Response{
		Rule:        created,
		SlotsPerDay: slotsPerDay,
	}, nil
}
