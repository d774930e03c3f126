package create_schedule_rule

import "errors"

var (
	// ErrInvalidRange возвращается, когда startDate > endDate или окно времени пустое
	ErrInvalidRange = errors.New("create_schedule_rule: invalid date or time range")

	// ErrInvalidPattern возвращается при неизвестном шаблоне или некорректных днях для CUSTOM
	ErrInvalidPattern = errors.New("create_schedule_rule: invalid recurrence pattern")

	// ErrActivityNotFound возвращается, когда активность не найдена
	ErrActivityNotFound = errors.New("create_schedule_rule: activity not found")

	// ErrStaffNotQualified возвращается, когда сотрудник не допущен к активности
	ErrStaffNotQualified = errors.New("create_schedule_rule: staff is not qualified for the activity")

	// ErrRuleOverlap возвращается, когда правило пересекается с существующим правилом активности
	ErrRuleOverlap = errors.New("create_schedule_rule: rule overlaps an existing rule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_schedule_rule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_schedule_rule: internal error")
)
