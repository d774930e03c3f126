package generate_schedule_rules

import (
	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

// DurationUnit единица длительности периода
type DurationUnit string

const (
	UnitWeeks  DurationUnit = "WEEKS"
	UnitMonths DurationUnit = "MONTHS"
	UnitYears  DurationUnit = "YEARS"
)

// Duration длительность периода от даты начала
type Duration struct {
	Value int
	Unit  DurationUnit
}

// Request модель запроса массовой генерации правил
type Request struct {
	StartDate  types.Date
	EndDate    *types.Date // либо EndDate, либо Duration
	Duration   *Duration
	Pattern    domain.RecurrencePattern
	CustomDays []string
	StartTime  *types.TimeString // по умолчанию 09:00
	EndTime    *types.TimeString // по умолчанию 17:00
}

// Response модель ответа массовой генерации
type Response struct {
	EndDate types.Date
	Created []*domain.ScheduleRule
	Skipped []Skipped
}

// Skipped активность, для которой правило не создано
type Skipped struct {
	ActivityID string
	Reason     string
}

// Причины пропуска активности
const (
	ReasonNoQualifiedStaff = "NO_QUALIFIED_STAFF"
	ReasonRuleOverlap      = "RULE_OVERLAP"
	ReasonWindowTooShort   = "WINDOW_TOO_SHORT"
)
