package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	ErrCannotCancel = errors.New("bookings: booking cannot be cancelled")

	// ErrNotPaid возвращается при сканировании неоплаченного бронирования
	ErrNotPaid = errors.New("bookings: booking is not paid")

	// ErrAlreadyScanned возвращается при повторном сканировании
	ErrAlreadyScanned = errors.New("bookings: booking already scanned")

	// ErrInvalidQRPayload возвращается, когда подпись QR-кода не сходится
	ErrInvalidQRPayload = errors.New("bookings: invalid qr payload")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
