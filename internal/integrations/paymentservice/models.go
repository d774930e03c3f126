package paymentservice

import "github.com/shopspring/decimal"

// PaymentStatus статус платежа во внешнем сервисе
type PaymentStatus string

const (
	StatusCaptured PaymentStatus = "CAPTURED"
	StatusPending  PaymentStatus = "PENDING"
	StatusFailed   PaymentStatus = "FAILED"
)

// Payment платёж из PaymentService
type Payment struct {
	TransactionID string          `json:"transactionId"`
	Status        PaymentStatus   `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
}
