package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	cartStore "github.com/m04kA/RiverRun-BookingService/internal/infra/cache/cart"
	bookingStorage "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/booking"
	couponRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/coupon"
	settingsRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/settings"
	ticketRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/ticket"
	"github.com/m04kA/RiverRun-BookingService/internal/integrations/paymentservice"
	"github.com/m04kA/RiverRun-BookingService/internal/integrations/userservice"
	slotsService "github.com/m04kA/RiverRun-BookingService/internal/service/slots"
	"github.com/m04kA/RiverRun-BookingService/pkg/ptr"
	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// recordingLogger запоминает предупреждения
type recordingLogger struct {
	nopLogger
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Warn(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

// ledger общее хранилище заказов и слотов, занятость считается по записанным заказам
type ledger struct {
	mu       sync.Mutex
	bookings []*domain.Booking
	slots    map[string]domain.Slot
	createFn func(*domain.Booking) error
}

func (l *ledger) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if l.createFn != nil {
		if err := l.createFn(b); err != nil {
			return nil, err
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	b.CreatedAt = time.Now()
	l.bookings = append(l.bookings, b)
	return b, nil
}

func (l *ledger) LockSlots(context.Context, []string) error { return nil }

func (l *ledger) ExistsByTransactionID(_ context.Context, transactionID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, b := range l.bookings {
		if ptr.Value(b.TransactionID) == transactionID {
			return true, nil
		}
	}
	return false, nil
}

func (l *ledger) FindSlot(_ context.Context, id string) (*domain.Slot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot, ok := l.slots[id]
	if !ok {
		return nil, slotsService.ErrSlotNotFound
	}
	for _, b := range l.bookings {
		if b.IsActive() {
			slot.BookedCount += domain.ActivityQuantities(b.Items)[id]
		}
	}
	return &slot, nil
}

func (l *ledger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.bookings)
}

// serialTx выполняет транзакции строго по одной
type serialTx struct{ mu sync.Mutex }

func (t *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

type fakeTickets map[string]*domain.Ticket

func (f fakeTickets) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	if t, ok := f[id]; ok {
		return t, nil
	}
	return nil, ticketRepo.ErrTicketNotFound
}

type fakeCoupons map[string]*domain.Coupon

func (f fakeCoupons) GetByCode(_ context.Context, code string) (*domain.Coupon, error) {
	if c, ok := f[domain.NormalizeCouponCode(code)]; ok {
		return c, nil
	}
	return nil, couponRepo.ErrCouponNotFound
}

type fakeSettings struct{ settings *domain.SystemSettings }

func (f fakeSettings) Get(context.Context) (*domain.SystemSettings, error) {
	if f.settings == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return f.settings, nil
}

type fakeCarts struct {
	mu      sync.Mutex
	carts   map[string]*domain.Cart
	deleted []string
}

func (f *fakeCarts) Get(_ context.Context, token string) (*domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.carts[token]; ok {
		return c, nil
	}
	return nil, cartStore.ErrCartNotFound
}

func (f *fakeCarts) Delete(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.carts, token)
	f.deleted = append(f.deleted, token)
	return nil
}

type fakeUsers struct {
	user *userservice.User
	err  error
}

func (f fakeUsers) GetUserWithGracefulDegradation(context.Context, string) (*userservice.User, error) {
	return f.user, f.err
}

type fakePayments struct{ err error }

func (f fakePayments) VerifyPayment(context.Context, string, decimal.Decimal) error { return f.err }

type prefixSigner struct{}

func (prefixSigner) Sign(id string) string { return "QR:" + id }

type countingMetrics struct {
	mu        sync.Mutex
	created   map[string]int
	conflicts int
}

func (m *countingMetrics) IncBookingCreated(channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.created == nil {
		m.created = make(map[string]int)
	}
	m.created[channel]++
}

func (m *countingMetrics) IncCapacityConflict() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts++
}

const slotA1 = "gen_2024-06-03_a1_0900"

type fixture struct {
	ledger   *ledger
	carts    *fakeCarts
	metrics  *countingMetrics
	users    fakeUsers
	payments PaymentVerifier
	coupons  fakeCoupons
	settings fakeSettings
	logger   Logger
}

func newFixture(capacity int) *fixture {
	return &fixture{
		ledger: &ledger{slots: map[string]domain.Slot{
			slotA1: {
				ID:            slotA1,
				ActivityID:    "a1",
				ActivityTitle: "Kayaking",
				Date:          types.MustParseDate("2024-06-03"),
				StartTime:     "09:00",
				EndTime:       "10:00",
				Price:         decimal.NewFromInt(30),
				Capacity:      capacity,
				IsGenerated:   true,
			},
			"past": {
				ID:       "past",
				Date:     types.MustParseDate("2024-05-01"),
				Price:    decimal.NewFromInt(10),
				Capacity: 10,
			},
		}},
		carts:   &fakeCarts{carts: map[string]*domain.Cart{}},
		metrics: &countingMetrics{},
		users:   fakeUsers{user: &userservice.User{ID: "u1", Name: "Ann", Email: "ann@example.com"}},
		coupons: fakeCoupons{
			"WELCOME10": {ID: "c1", Code: "WELCOME10", DiscountType: domain.DiscountPercent, Value: decimal.NewFromInt(10), IsActive: true},
			"OLD":       {ID: "c2", Code: "OLD", DiscountType: domain.DiscountFixed, Value: decimal.NewFromInt(5), IsActive: false},
		},
		settings: fakeSettings{settings: &domain.SystemSettings{TaxPercentage: decimal.NewFromInt(5)}},
		logger:   nopLogger{},
	}
}

func (f *fixture) useCase() *UseCase {
	tickets := fakeTickets{
		"t1": {ID: "t1", Title: "Adult Entry", Price: decimal.NewFromInt(50), Category: domain.TicketAdult},
	}
	return NewUseCase(
		f.ledger, f.ledger, tickets, f.coupons, f.settings, f.carts, f.users, f.payments,
		prefixSigner{}, f.metrics, &serialTx{}, f.logger,
	).WithTimeProvider(fixedTime{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)})
}

func oneSeat(userID string) *Request {
	return &Request{
		UserID: userID,
		Items:  []ItemRequest{{Type: domain.ItemActivity, ReferenceID: slotA1, Quantity: 1}},
	}
}

func TestExecute_TotalsWithCouponAndTax(t *testing.T) {
	f := newFixture(10)

	resp, err := f.useCase().Execute(context.Background(), &Request{
		UserID: "u1",
		Items: []ItemRequest{
			{Type: domain.ItemTicket, ReferenceID: "t1", Quantity: 2},
			{Type: domain.ItemActivity, ReferenceID: slotA1, Quantity: 1},
		},
		CouponCode: ptr.Ptr(" welcome10 "),
	})
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, "130.00", b.Subtotal.StringFixed(2))
	assert.Equal(t, "13.00", b.DiscountAmount.StringFixed(2))
	assert.Equal(t, "5.85", b.TaxAmount.StringFixed(2))
	assert.Equal(t, "122.85", b.TotalAmount.StringFixed(2))
	assert.Equal(t, "WELCOME10", ptr.Value(b.CouponCode))
	assert.Equal(t, domain.StatusPaid, b.Status)
	assert.Equal(t, "Ann", b.CustomerName)
	assert.Equal(t, "QR:"+b.ID, b.QRCodeData)
	require.Len(t, b.Items, 2)
	assert.Equal(t, "Kayaking", b.Items[1].Title)
	assert.Equal(t, "2024-06-03 09:00-10:00", b.Items[1].Subtitle)
	assert.NotNil(t, b.TransactionID)
	assert.Equal(t, 1, f.metrics.created[domain.ChannelOnline])
}

func TestExecute_DefaultTaxWhenSettingsMissing(t *testing.T) {
	f := newFixture(10)
	f.settings = fakeSettings{}

	resp, err := f.useCase().Execute(context.Background(), &Request{
		UserID: "u1",
		Items:  []ItemRequest{{Type: domain.ItemTicket, ReferenceID: "t1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "2.50", resp.Booking.TaxAmount.StringFixed(2))
}

func TestExecute_LastSeatTakenReturnsSlotID(t *testing.T) {
	f := newFixture(1)
	uc := f.useCase()

	_, err := uc.Execute(context.Background(), oneSeat("u1"))
	require.NoError(t, err)

	slot, err := f.ledger.FindSlot(context.Background(), slotA1)
	require.NoError(t, err)
	assert.Equal(t, 0, slot.Available(0))

	_, err = uc.Execute(context.Background(), oneSeat("u2"))
	require.ErrorIs(t, err, ErrSlotNotAvailable)

	var unavailable *SlotUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, slotA1, unavailable.SlotID)
	assert.Equal(t, 1, f.ledger.count())
	assert.Equal(t, 1, f.metrics.conflicts)
}

func TestExecute_QuantitiesForSameSlotAreSummed(t *testing.T) {
	f := newFixture(3)

	_, err := f.useCase().Execute(context.Background(), &Request{
		UserID: "u1",
		Items: []ItemRequest{
			{Type: domain.ItemActivity, ReferenceID: slotA1, Quantity: 2},
			{Type: domain.ItemActivity, ReferenceID: slotA1, Quantity: 2},
		},
	})
	require.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Zero(t, f.ledger.count())
}

func TestExecute_ParallelCommitsForLastSeat(t *testing.T) {
	f := newFixture(1)
	uc := f.useCase()

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), oneSeat(fmt.Sprintf("u%d", i)))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrSlotNotAvailable):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, rejected)

	slot, err := f.ledger.FindSlot(context.Background(), slotA1)
	require.NoError(t, err)
	assert.LessOrEqual(t, slot.BookedCount, slot.Capacity)
}

func TestExecute_InvalidCoupon(t *testing.T) {
	for _, code := range []string{"NOPE", "old"} {
		t.Run(code, func(t *testing.T) {
			f := newFixture(10)
			req := oneSeat("u1")
			req.CouponCode = ptr.Ptr(code)

			_, err := f.useCase().Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidCoupon)
			assert.Zero(t, f.ledger.count())
		})
	}
}

func TestExecute_EmptyCart(t *testing.T) {
	f := newFixture(10)
	f.carts.carts["empty"] = &domain.Cart{Token: "empty", UserID: "u1"}
	uc := f.useCase()

	_, err := uc.Execute(context.Background(), &Request{UserID: "u1"})
	require.ErrorIs(t, err, ErrEmptyCart)

	_, err = uc.Execute(context.Background(), &Request{UserID: "u1", CartToken: ptr.Ptr("empty")})
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestExecute_FromCart(t *testing.T) {
	f := newFixture(10)
	f.carts.carts["tok"] = &domain.Cart{
		Token:  "tok",
		UserID: "u1",
		Items: []domain.BookingItem{
			// цена из корзины игнорируется
			{ID: "i1", Type: domain.ItemTicket, ReferenceID: "t1", Quantity: 1, Price: decimal.NewFromInt(1)},
		},
		CouponCode: ptr.Ptr("WELCOME10"),
	}
	uc := f.useCase()

	_, err := uc.Execute(context.Background(), &Request{UserID: "u2", CartToken: ptr.Ptr("tok")})
	require.ErrorIs(t, err, ErrCartNotFound)

	resp, err := uc.Execute(context.Background(), &Request{UserID: "u1", CartToken: ptr.Ptr("tok")})
	require.NoError(t, err)
	assert.Equal(t, "50.00", resp.Booking.Subtotal.StringFixed(2))
	assert.Equal(t, "5.00", resp.Booking.DiscountAmount.StringFixed(2))
	assert.Equal(t, []string{"tok"}, f.carts.deleted)

	_, err = uc.Execute(context.Background(), &Request{UserID: "u1", CartToken: ptr.Ptr("tok")})
	require.ErrorIs(t, err, ErrCartNotFound)
}

func TestExecute_ItemErrors(t *testing.T) {
	tests := []struct {
		name    string
		item    ItemRequest
		wantErr error
	}{
		{"unknown ticket", ItemRequest{Type: domain.ItemTicket, ReferenceID: "t9", Quantity: 1}, ErrItemNotFound},
		{"unknown slot", ItemRequest{Type: domain.ItemActivity, ReferenceID: "s9", Quantity: 1}, ErrItemNotFound},
		{"past slot", ItemRequest{Type: domain.ItemActivity, ReferenceID: "past", Quantity: 1}, ErrSlotInPast},
		{"zero quantity", ItemRequest{Type: domain.ItemTicket, ReferenceID: "t1", Quantity: 0}, ErrInvalidInput},
		{"unknown type", ItemRequest{Type: "FOOD", ReferenceID: "t1", Quantity: 1}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(10)
			_, err := f.useCase().Execute(context.Background(), &Request{UserID: "u1", Items: []ItemRequest{tt.item}})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.ledger.count())
		})
	}
}

func TestExecute_PaymentVerification(t *testing.T) {
	t.Run("rejected payment writes nothing", func(t *testing.T) {
		f := newFixture(10)
		f.payments = fakePayments{err: paymentservice.ErrAmountMismatch}
		req := oneSeat("u1")
		req.TransactionID = ptr.Ptr("txn-1")

		_, err := f.useCase().Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrPaymentFailed)
		assert.Zero(t, f.ledger.count())
	})

	t.Run("transaction id required", func(t *testing.T) {
		f := newFixture(10)
		f.payments = fakePayments{}

		_, err := f.useCase().Execute(context.Background(), oneSeat("u1"))
		require.ErrorIs(t, err, ErrPaymentRequired)
	})

	t.Run("gateway down", func(t *testing.T) {
		f := newFixture(10)
		f.payments = fakePayments{err: paymentservice.ErrInternal}
		req := oneSeat("u1")
		req.TransactionID = ptr.Ptr("txn-1")

		_, err := f.useCase().Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrInternal)
		assert.Zero(t, f.ledger.count())
	})
}

func TestExecute_CounterPaymentMethodsRequirePOS(t *testing.T) {
	for _, method := range []domain.PaymentMethod{domain.PaymentCash, domain.PaymentOnline} {
		t.Run(string(method), func(t *testing.T) {
			f := newFixture(10)
			req := oneSeat("u1")
			req.PaymentMethod = method
			req.TransactionID = ptr.Ptr("made-up")

			_, err := f.useCase().Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, f.ledger.count())
			assert.Empty(t, f.metrics.created)
		})
	}
}

func TestExecute_TransactionIDPaysOneBooking(t *testing.T) {
	f := newFixture(10)
	f.payments = fakePayments{}

	var created int
	for i := 0; i < 3; i++ {
		req := oneSeat("u1")
		req.TransactionID = ptr.Ptr("txn-1")

		_, err := f.useCase().Execute(context.Background(), req)
		if err == nil {
			created++
			continue
		}
		require.ErrorIs(t, err, ErrPaymentAlreadyUsed)
	}

	assert.Equal(t, 1, created)
	assert.Equal(t, 1, f.ledger.count())

	t.Run("counter transfer cannot reuse a paid id", func(t *testing.T) {
		req := oneSeat("staff-user")
		req.PaymentMethod = domain.PaymentOnline
		req.CreatedByStaffID = ptr.Ptr("s1")
		req.TransactionID = ptr.Ptr("txn-1")

		_, err := f.useCase().Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrPaymentAlreadyUsed)
		assert.Equal(t, 1, f.ledger.count())
	})

	t.Run("unique index violation is reported as reuse", func(t *testing.T) {
		f := newFixture(10)
		f.payments = fakePayments{}
		f.ledger.createFn = func(*domain.Booking) error {
			return fmt.Errorf("%w: Create - transaction_id=txn-2", bookingStorage.ErrDuplicateTransaction)
		}
		req := oneSeat("u1")
		req.TransactionID = ptr.Ptr("txn-2")

		_, err := f.useCase().Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrPaymentAlreadyUsed)
		assert.NotErrorIs(t, err, ErrInternal)
	})
}

func TestExecute_UnverifiedCardPaymentIsLogged(t *testing.T) {
	f := newFixture(10)
	logger := &recordingLogger{}
	f.logger = logger

	resp, err := f.useCase().Execute(context.Background(), oneSeat("u1"))
	require.NoError(t, err)
	assert.NotEmpty(t, ptr.Value(resp.Booking.TransactionID))

	require.Len(t, logger.warns, 1)
	assert.Contains(t, logger.warns[0], "payment service is disabled")
	assert.Contains(t, logger.warns[0], "user=u1")

	t.Run("verified payment is not flagged", func(t *testing.T) {
		f := newFixture(10)
		f.payments = fakePayments{}
		logger := &recordingLogger{}
		f.logger = logger
		req := oneSeat("u1")
		req.TransactionID = ptr.Ptr("txn-9")

		_, err := f.useCase().Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Empty(t, logger.warns)
	})
}

func TestExecute_POSSale(t *testing.T) {
	f := newFixture(10)
	req := oneSeat("staff-user")
	req.PaymentMethod = domain.PaymentOnline
	req.CreatedByStaffID = ptr.Ptr("s1")
	req.CreatedByStaffEmail = ptr.Ptr("s1@park.example")

	_, err := f.useCase().Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrPaymentRequired)

	req.TransactionID = ptr.Ptr("UPI-778")
	resp, err := f.useCase().Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, walkInCustomerName, resp.Booking.CustomerName)
	assert.Equal(t, "UPI-778", ptr.Value(resp.Booking.TransactionID))
	assert.True(t, resp.Booking.IsPOS())
	assert.Equal(t, 1, f.metrics.created[domain.ChannelPOS])

	cash := oneSeat("staff-user")
	cash.PaymentMethod = domain.PaymentCash
	cash.CreatedByStaffID = ptr.Ptr("s1")
	cash.CustomerName = ptr.Ptr("Bob")
	resp, err = f.useCase().Execute(context.Background(), cash)
	require.NoError(t, err)
	assert.Equal(t, "Bob", resp.Booking.CustomerName)
	assert.Nil(t, resp.Booking.TransactionID)
}

func TestExecute_UserServiceDegraded(t *testing.T) {
	f := newFixture(10)
	f.users = fakeUsers{err: userservice.ErrServiceDegraded}
	req := oneSeat("u1")
	req.CustomerName = ptr.Ptr("Fallback Name")
	req.CustomerEmail = ptr.Ptr("fallback@example.com")

	resp, err := f.useCase().Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Fallback Name", resp.Booking.CustomerName)
	assert.Equal(t, "fallback@example.com", resp.Booking.CustomerEmail)
}

func TestExecute_StorageFailureRollsBack(t *testing.T) {
	f := newFixture(10)
	f.ledger.createFn = func(*domain.Booking) error { return errors.New("disk full") }

	_, err := f.useCase().Execute(context.Background(), oneSeat("u1"))
	require.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, f.ledger.count())
	assert.Empty(t, f.metrics.created)
}
