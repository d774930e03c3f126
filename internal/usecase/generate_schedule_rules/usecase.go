package generate_schedule_rules

import (
	"context"
	"errors"
	"fmt"

	createRule "github.com/m04kA/RiverRun-BookingService/internal/usecase/create_schedule_rule"
)

// UseCase use case "Сохранить правило и сгенерировать": одно правило на каждую активность,
// у которой есть хотя бы один допущенный сотрудник
type UseCase struct {
	activityRepo ActivityRepository
	staffRepo    StaffRepository
	ruleCreator  RuleCreator
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	activityRepo ActivityRepository,
	staffRepo StaffRepository,
	ruleCreator RuleCreator,
	logger Logger,
) *UseCase {
	return &UseCase{
		activityRepo: activityRepo,
		staffRepo:    staffRepo,
		ruleCreator:  ruleCreator,
		logger:       logger,
	}
}

// Execute выполняет массовую генерацию правил
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateScheduleRules: start=%s, pattern=%s", req.StartDate, req.Pattern)

	// 1. Период и окно
	endDate, err := resolveEndDate(req)
	if err != nil {
		uc.logger.Warn("GenerateScheduleRules: validation failed: %v", err)
		return nil, err
	}
	startTime, endTime, err := resolveWindow(req)
	if err != nil {
		uc.logger.Warn("GenerateScheduleRules: validation failed: %v", err)
		return nil, err
	}

	// 2. Каталог и справочник сотрудников
	activities, err := uc.activityRepo.List(ctx, nil)
	if err != nil {
		uc.logger.Error("GenerateScheduleRules: failed to list activities: %v", err)
		return nil, fmt.Errorf("%w: failed to list activities: %w", ErrInternal, err)
	}

	staff, err := uc.staffRepo.List(ctx)
	if err != nil {
		uc.logger.Error("GenerateScheduleRules: failed to list staff: %v", err)
		return nil, fmt.Errorf("%w: failed to list staff: %w", ErrInternal, err)
	}
	existing := make(map[string]bool, len(staff))
	for _, s := range staff {
		existing[s.ID] = true
	}

	resp := &Response{EndDate: endDate}

	// 3. Правило на каждую активность
	for _, activity := range activities {
		staffIDs := qualifiedStaff(activity, existing)
		if len(staffIDs) == 0 {
			resp.Skipped = append(resp.Skipped, Skipped{ActivityID: activity.ID, Reason: ReasonNoQualifiedStaff})
			continue
		}

		created, err := uc.ruleCreator.Execute(ctx, &createRule.Request{
			ActivityID: activity.ID,
			StaffIDs:   staffIDs,
			StartDate:  req.StartDate,
			EndDate:    endDate,
			StartTime:  startTime,
			EndTime:    endTime,
			Pattern:    req.Pattern,
			CustomDays: req.CustomDays,
		})
		switch {
		case err == nil:
			resp.Created = append(resp.Created, created.Rule)
		case errors.Is(err, createRule.ErrRuleOverlap):
			resp.Skipped = append(resp.Skipped, Skipped{ActivityID: activity.ID, Reason: ReasonRuleOverlap})
		case errors.Is(err, createRule.ErrInvalidRange):
			resp.Skipped = append(resp.Skipped, Skipped{ActivityID: activity.ID, Reason: ReasonWindowTooShort})
		default:
			uc.logger.Error("GenerateScheduleRules: failed for activity id=%s: %v", activity.ID, err)
			return nil, err
		}
	}

	uc.logger.Info("GenerateScheduleRules: created=%d, skipped=%d, end=%s", len(resp.Created), len(resp.Skipped), endDate)
	return resp, nil
}
