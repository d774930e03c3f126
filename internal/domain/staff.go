package domain

import "time"

// WorkHours рабочие часы сотрудника в конкретный день недели
type WorkHours struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Active bool   `json:"active"`
}

// WeeklySchedule расписание по дням недели ("Monday" -> часы).
// Используется только для отображения: слоты строятся из правил расписания.
type WeeklySchedule map[string]WorkHours

// Staff сотрудник парка
type Staff struct {
	ID        string
	Name      string
	Role      string
	Schedule  WeeklySchedule
	CreatedAt time.Time
	UpdatedAt time.Time
}
