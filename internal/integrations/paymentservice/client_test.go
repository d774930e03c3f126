package paymentservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second, nopLogger{})
}

func TestVerifyPayment(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		amount  string
		wantErr error
	}{
		{
			name:   "captured with matching amount",
			status: http.StatusOK,
			body:   `{"transactionId":"txn_1","status":"CAPTURED","amount":75.6,"currency":"USD"}`,
			amount: "75.60",
		},
		{
			name:    "pending payment",
			status:  http.StatusOK,
			body:    `{"transactionId":"txn_1","status":"PENDING","amount":75.6}`,
			amount:  "75.60",
			wantErr: ErrPaymentNotCaptured,
		},
		{
			name:    "amount mismatch",
			status:  http.StatusOK,
			body:    `{"transactionId":"txn_1","status":"CAPTURED","amount":"10.00"}`,
			amount:  "75.60",
			wantErr: ErrAmountMismatch,
		},
		{
			name:    "unknown transaction",
			status:  http.StatusNotFound,
			amount:  "75.60",
			wantErr: ErrPaymentNotFound,
		},
		{
			name:    "gateway error",
			status:  http.StatusBadGateway,
			body:    "upstream down",
			amount:  "75.60",
			wantErr: ErrInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/internal/payments/txn_1", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := client.VerifyPayment(context.Background(), "txn_1", decimal.RequireFromString(tt.amount))
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetPayment_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, nopLogger{})

	_, err := client.GetPayment(context.Background(), "txn_1")
	require.ErrorIs(t, err, ErrInternal)
}
