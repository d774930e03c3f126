package ticket

import "errors"

var (
	// ErrTicketNotFound возвращается, когда билет не найден
	ErrTicketNotFound = errors.New("ticket.repository: ticket not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("ticket.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("ticket.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("ticket.repository: failed to scan row")
)
