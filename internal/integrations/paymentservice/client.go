package paymentservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// Client клиент для проверки платежей
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента PaymentService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetPayment получает платёж по идентификатору транзакции
func (c *Client) GetPayment(ctx context.Context, transactionID string) (*Payment, error) {
	endpoint := fmt.Sprintf("%s/internal/payments/%s", c.baseURL, url.PathEscape(transactionID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrPaymentNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var payment Payment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &payment, nil
}

// VerifyPayment проверяет, что транзакция проведена на сумму заказа.
// Любая ошибка означает, что заказ создавать нельзя.
func (c *Client) VerifyPayment(ctx context.Context, transactionID string, amount decimal.Decimal) error {
	c.log.Info("Verifying payment: transaction_id=%s, amount=%s", transactionID, amount.StringFixed(2))

	payment, err := c.GetPayment(ctx, transactionID)
	if err != nil {
		c.log.Error("Payment verification failed: transaction_id=%s, error=%v", transactionID, err)
		return err
	}

	if payment.Status != StatusCaptured {
		c.log.Error("Payment not captured: transaction_id=%s, status=%s", transactionID, payment.Status)
		return fmt.Errorf("%w: status=%s", ErrPaymentNotCaptured, payment.Status)
	}

	if !payment.Amount.Round(2).Equal(amount.Round(2)) {
		c.log.Error("Payment amount mismatch: transaction_id=%s, paid=%s, expected=%s",
			transactionID, payment.Amount.StringFixed(2), amount.StringFixed(2))
		return fmt.Errorf("%w: paid=%s, expected=%s", ErrAmountMismatch, payment.Amount.StringFixed(2), amount.StringFixed(2))
	}

	c.log.Info("Payment verified: transaction_id=%s", transactionID)
	return nil
}
