package paymentservice

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда транзакция неизвестна платёжному сервису
	ErrPaymentNotFound = errors.New("paymentservice client: payment not found")

	// ErrPaymentNotCaptured возвращается, когда платёж существует, но не завершён
	ErrPaymentNotCaptured = errors.New("paymentservice client: payment not captured")

	// ErrAmountMismatch возвращается, когда сумма платежа не совпадает с суммой заказа
	ErrAmountMismatch = errors.New("paymentservice client: amount mismatch")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("paymentservice client: invalid response")
)
