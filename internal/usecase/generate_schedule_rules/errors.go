package generate_schedule_rules

import "errors"

var (
	// ErrInvalidRange возвращается при некорректном периоде или окне времени
	ErrInvalidRange = errors.New("generate_schedule_rules: invalid date or time range")

	// ErrInvalidDuration возвращается при некорректной длительности периода
	ErrInvalidDuration = errors.New("generate_schedule_rules: invalid duration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_schedule_rules: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_schedule_rules: internal error")
)
