package create_schedule_rule

import (
	"fmt"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
)

// validateRequest валидирует и нормализует входные данные запроса
func validateRequest(req *Request) error {
	if req.ActivityID == "" {
		return fmt.Errorf("%w: activityId is required", ErrInvalidInput)
	}

	req.StaffIDs = uniqueNonEmpty(req.StaffIDs)
	if len(req.StaffIDs) == 0 {
		return fmt.Errorf("%w: at least one staff member is required", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidRange)
	}
	if req.StartDate.After(req.EndDate) {
		return fmt.Errorf("%w: startDate %s is after endDate %s", ErrInvalidRange, req.StartDate, req.EndDate)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidRange, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidRange, err)
	}
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime %s must be before endTime %s", ErrInvalidRange, req.StartTime, req.EndTime)
	}

	return validatePattern(req)
}

// validatePattern проверяет шаблон и приводит названия дней к каноническому виду ("Monday")
func validatePattern(req *Request) error {
	if !req.Pattern.IsValid() {
		return fmt.Errorf("%w: unknown pattern %q", ErrInvalidPattern, req.Pattern)
	}

	if req.Pattern != domain.PatternCustom {
		req.CustomDays = nil
		return nil
	}

	if len(req.CustomDays) == 0 {
		return fmt.Errorf("%w: customDays are required for CUSTOM pattern", ErrInvalidPattern)
	}

	seen := make(map[string]bool, len(req.CustomDays))
	days := make([]string, 0, len(req.CustomDays))
	for _, name := range req.CustomDays {
		day, ok := domain.ParseWeekday(name)
		if !ok {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidPattern, name)
		}
		if !seen[day.String()] {
			seen[day.String()] = true
			days = append(days, day.String())
		}
	}
	req.CustomDays = days

	return nil
}

// validateAgainstActivity проверяет правило относительно активности
func validateAgainstActivity(req *Request, activity *domain.Activity) error {
	if missing := activity.UnqualifiedStaff(req.StaffIDs); len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrStaffNotQualified, missing)
	}

	window := req.EndTime.Minutes() - req.StartTime.Minutes()
	if window < activity.DurationMinutes {
		return fmt.Errorf("%w: window of %d minutes is shorter than activity duration %d",
			ErrInvalidRange, window, activity.DurationMinutes)
	}

	return nil
}

func uniqueNonEmpty(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
