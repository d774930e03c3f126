package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

// RecurrencePattern шаблон повторения правила по дням недели
type RecurrencePattern string

const (
	PatternDaily    RecurrencePattern = "DAILY"
	PatternWeekdays RecurrencePattern = "WEEKDAYS"
	PatternWeekends RecurrencePattern = "WEEKENDS"
	PatternCustom   RecurrencePattern = "CUSTOM"
)

// IsValid returns true for a known pattern
func (p RecurrencePattern) IsValid() bool {
	switch p {
	case PatternDaily, PatternWeekdays, PatternWeekends, PatternCustom:
		return true
	}
	return false
}

// ParseWeekday разбирает английское название дня недели ("Monday", "monday")
func ParseWeekday(name string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(name)) {
			return d, true
		}
	}
	return 0, false
}

// ScheduleRule правило повторяющегося расписания активности.
// Слоты по правилу не хранятся: они вычисляются при чтении.
type ScheduleRule struct {
	ID         string
	ActivityID string
	StaffIDs   []string
	StartDate  types.Date // включительно
	EndDate    types.Date // включительно
	StartTime  types.TimeString
	EndTime    types.TimeString
	Pattern    RecurrencePattern
	CustomDays []string // только для PatternCustom: "Monday", "Wednesday"

	// Снимок цены и вместимости активности на момент создания
	Price    decimal.Decimal
	Capacity int

	CreatedAt time.Time
}

// Weekdays возвращает множество дней недели, в которые правило действует
func (r *ScheduleRule) Weekdays() map[time.Weekday]bool {
	days := make(map[time.Weekday]bool, 7)
	switch r.Pattern {
	case PatternDaily:
		for d := time.Sunday; d <= time.Saturday; d++ {
			days[d] = true
		}
	case PatternWeekdays:
		for d := time.Monday; d <= time.Friday; d++ {
			days[d] = true
		}
	case PatternWeekends:
		days[time.Saturday] = true
		days[time.Sunday] = true
	case PatternCustom:
		for _, name := range r.CustomDays {
			if d, ok := ParseWeekday(name); ok {
				days[d] = true
			}
		}
	}
	return days
}

// AppliesTo returns true if the rule produces slots on the date
func (r *ScheduleRule) AppliesTo(date types.Date) bool {
	if !date.Between(r.StartDate, r.EndDate) {
		return false
	}
	return r.Weekdays()[date.Weekday()]
}

// GenerateSlots раскладывает окно правила на слоты длительностью activity.DurationMinutes
// встык, начиная со StartTime. Слот, который не помещается до EndTime или переходит
// через полночь, не создаётся.
func (r *ScheduleRule) GenerateSlots(date types.Date, activity *Activity) []*Slot {
	if activity == nil || activity.DurationMinutes <= 0 || !r.AppliesTo(date) {
		return nil
	}

	slots := make([]*Slot, 0)
	current := r.StartTime
	for {
		next, err := current.AddMinutes(activity.DurationMinutes)
		if err != nil || next.IsAfter(r.EndTime) {
			break
		}

		slots = append(slots, &Slot{
			ID:            GeneratedSlotID(date, r.ActivityID, current),
			ActivityID:    r.ActivityID,
			ActivityTitle: activity.Title,
			StaffIDs:      append([]string(nil), r.StaffIDs...),
			Date:          date,
			StartTime:     current,
			EndTime:       next,
			Price:         r.Price,
			Capacity:      r.Capacity,
			IsGenerated:   true,
			RuleID:        r.ID,
		})

		current = next
	}

	return slots
}

// Overlaps returns true if both rules can put the same activity on the same
// calendar day with intersecting time windows
func (r *ScheduleRule) Overlaps(other *ScheduleRule) bool {
	if r.ActivityID != other.ActivityID {
		return false
	}
	if r.EndDate.Before(other.StartDate) || other.EndDate.Before(r.StartDate) {
		return false
	}
	if !r.StartTime.IsBefore(other.EndTime) || !other.StartTime.IsBefore(r.EndTime) {
		return false
	}

	mine := r.Weekdays()
	for day := range other.Weekdays() {
		if mine[day] && r.sharesWeekday(other, day) {
			return true
		}
	}
	return false
}

// sharesWeekday returns true if the intersection of both date ranges contains the weekday
func (r *ScheduleRule) sharesWeekday(other *ScheduleRule, day time.Weekday) bool {
	from := r.StartDate
	if other.StartDate.After(from) {
		from = other.StartDate
	}
	to := r.EndDate
	if other.EndDate.Before(to) {
		to = other.EndDate
	}

	for d, i := from, 0; !d.After(to) && i < 7; d, i = d.AddDays(1), i+1 {
		if d.Weekday() == day {
			return true
		}
	}
	return false
}
