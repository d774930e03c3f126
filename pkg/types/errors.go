package types

import "errors"

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени (ожидается HH:MM)
	ErrInvalidTimeFormat = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, когда арифметика выходит за пределы суток
	ErrTimeOverflow = errors.New("time string overflows the day")

	// ErrInvalidDateFormat возвращается при некорректном формате даты (ожидается YYYY-MM-DD)
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrUnsupportedScanType возвращается, когда значение из БД нельзя преобразовать
	ErrUnsupportedScanType = errors.New("unsupported scan type")
)
