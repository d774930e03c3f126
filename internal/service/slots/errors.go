package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slots: slot not found")

	// ErrRuleNotFound возвращается, когда правило расписания не найдено
	ErrRuleNotFound = errors.New("slots: schedule rule not found")

	// ErrActivityNotFound возвращается, когда активность не найдена
	ErrActivityNotFound = errors.New("slots: activity not found")

	// ErrStaffNotQualified возвращается, когда сотрудник не допущен к активности
	ErrStaffNotQualified = errors.New("slots: staff is not qualified for the activity")

	// ErrGeneratedSlot возвращается при попытке удалить слот, построенный из правила
	ErrGeneratedSlot = errors.New("slots: generated slots can only be removed by deleting their rule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots: internal error")
)
