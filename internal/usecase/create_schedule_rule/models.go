package create_schedule_rule

import (
	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

// Request модель запроса на создание правила расписания
type Request struct {
	ActivityID string
	StaffIDs   []string
	StartDate  types.Date
	EndDate    types.Date
	StartTime  types.TimeString
	EndTime    types.TimeString
	Pattern    domain.RecurrencePattern
	CustomDays []string // только для CUSTOM
}

// Response модель ответа с созданным правилом
type Response struct {
	Rule        *domain.ScheduleRule
	SlotsPerDay int // количество слотов в каждый подходящий день
}
