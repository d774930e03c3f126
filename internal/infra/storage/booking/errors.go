package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrStatusConflict возвращается, когда условное обновление не нашло строку в ожидаемом состоянии
	ErrStatusConflict = errors.New("booking.repository: booking is not in the expected state")

	// ErrDuplicateTransaction возвращается, когда id транзакции уже записан в другом заказе
	ErrDuplicateTransaction = errors.New("booking.repository: transaction id already used")

	// ErrNoTransaction возвращается, когда операции нужна активная транзакция
	ErrNoTransaction = errors.New("booking.repository: operation requires a transaction")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
