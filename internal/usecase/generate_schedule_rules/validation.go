package generate_schedule_rules

import (
	"fmt"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

// resolveEndDate возвращает конечную дату: заданную явно или start + длительность
func resolveEndDate(req *Request) (types.Date, error) {
	if req.StartDate.IsZero() {
		return types.Date{}, fmt.Errorf("%w: startDate is required", ErrInvalidRange)
	}

	if req.EndDate != nil {
		if req.EndDate.Before(req.StartDate) {
			return types.Date{}, fmt.Errorf("%w: endDate %s is before startDate %s", ErrInvalidRange, req.EndDate, req.StartDate)
		}
		return *req.EndDate, nil
	}

	if req.Duration == nil || req.Duration.Value <= 0 {
		return types.Date{}, fmt.Errorf("%w: endDate or a positive duration is required", ErrInvalidDuration)
	}

	switch req.Duration.Unit {
	case UnitWeeks:
		return req.StartDate.AddDays(7 * req.Duration.Value), nil
	case UnitMonths:
		return req.StartDate.AddDate(0, req.Duration.Value, 0), nil
	case UnitYears:
		return req.StartDate.AddDate(req.Duration.Value, 0, 0), nil
	}

	return types.Date{}, fmt.Errorf("%w: unknown unit %q", ErrInvalidDuration, req.Duration.Unit)
}

// resolveWindow возвращает окно времени с подстановкой значений по умолчанию
func resolveWindow(req *Request) (types.TimeString, types.TimeString, error) {
	start := types.TimeString(domain.DefaultRuleStartTime)
	end := types.TimeString(domain.DefaultRuleEndTime)
	if req.StartTime != nil {
		start = *req.StartTime
	}
	if req.EndTime != nil {
		end = *req.EndTime
	}

	if err := start.Validate(); err != nil {
		return "", "", fmt.Errorf("%w: startTime: %v", ErrInvalidRange, err)
	}
	if err := end.Validate(); err != nil {
		return "", "", fmt.Errorf("%w: endTime: %v", ErrInvalidRange, err)
	}
	if !start.IsBefore(end) {
		return "", "", fmt.Errorf("%w: startTime %s must be before endTime %s", ErrInvalidRange, start, end)
	}

	return start, end, nil
}

// qualifiedStaff возвращает сотрудников, которые есть в справочнике и допущены к активности
func qualifiedStaff(activity *domain.Activity, existing map[string]bool) []string {
	out := make([]string, 0, len(activity.AssignedStaffIDs))
	for _, id := range activity.AssignedStaffIDs {
		if existing[id] {
			out = append(out, id)
		}
	}
	return out
}
