package catalog

import "errors"

var (
	// ErrActivityNotFound возвращается, когда активность не найдена
	ErrActivityNotFound = errors.New("catalog: activity not found")

	// ErrCategoryNotFound возвращается, когда категория не найдена
	ErrCategoryNotFound = errors.New("catalog: category not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("catalog: staff not found")

	// ErrTicketNotFound возвращается, когда билет не найден
	ErrTicketNotFound = errors.New("catalog: ticket not found")

	// ErrInUse возвращается при удалении записи, на которую есть ссылки
	ErrInUse = errors.New("catalog: entity is still referenced")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("catalog: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
