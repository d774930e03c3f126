package bookings

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/RiverRun-BookingService/internal/service/bookings/models"
	"github.com/m04kA/RiverRun-BookingService/pkg/ptr"
	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*domain.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if b, ok := args.Get(0).([]*domain.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, from []domain.BookingStatus) error {
	return m.Called(ctx, id, status, from).Error(0)
}

func (m *mockRepo) MarkScanned(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

var (
	now      = time.Date(2024, 6, 3, 9, 5, 0, 0, time.UTC)
	customer = models.Caller{UserID: "u1", Role: domain.RoleCustomer}
	stranger = models.Caller{UserID: "u2", Role: domain.RoleCustomer}
	staff    = models.Caller{UserID: "s1", Role: domain.RoleStaff}
)

func newService(repo *mockRepo) *Service {
	return NewService(repo, NewQRCodec("secret"), nopLogger{}).WithTimeProvider(fixedTime{t: now})
}

func paid(id string) *domain.Booking {
	return &domain.Booking{ID: id, UserID: "u1", Status: domain.StatusPaid}
}

func TestGetByID_Access(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetByID", mock.Anything, "b1").Return(paid("b1"), nil)
	repo.On("GetByID", mock.Anything, "missing").Return(nil, bookingRepo.ErrBookingNotFound)
	svc := newService(repo)

	resp, err := svc.GetByID(context.Background(), "b1", customer)
	require.NoError(t, err)
	assert.Equal(t, "b1", resp.ID)

	_, err = svc.GetByID(context.Background(), "b1", staff)
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), "b1", stranger)
	require.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), "missing", staff)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestList_CustomerSeesOwnBookings(t *testing.T) {
	repo := &mockRepo{}
	repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.BookingsFilter) bool {
		return f.UserID != nil && *f.UserID == "u1" && f.Limit == models.DefaultLimit
	})).Return([]*domain.Booking{paid("b1")}, nil).Once()
	repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.BookingsFilter) bool {
		return f.UserID == nil && f.Limit == models.MaxLimit &&
			f.To != nil && f.To.Equal(time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC))
	})).Return([]*domain.Booking{paid("b1"), paid("b2")}, nil).Once()
	svc := newService(repo)

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{Caller: customer})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	resp, err = svc.List(context.Background(), &models.ListBookingsRequest{
		Caller: staff,
		Limit:  10_000,
		To:     ptr.Ptr(types.MustParseDate("2024-06-03")),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	_, err = svc.List(context.Background(), &models.ListBookingsRequest{Caller: staff, Status: ptr.Ptr("LOST")})
	require.ErrorIs(t, err, ErrInvalidInput)
	repo.AssertExpectations(t)
}

func TestCancel(t *testing.T) {
	t.Run("paid booking is cancelled", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("GetByID", mock.Anything, "b1").Return(paid("b1"), nil)
		repo.On("UpdateStatus", mock.Anything, "b1", domain.StatusCancelled, mock.Anything).Return(nil)

		resp, err := newService(repo).Cancel(context.Background(), "b1")
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	})

	t.Run("already cancelled", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("GetByID", mock.Anything, "b1").Return(&domain.Booking{ID: "b1", Status: domain.StatusCancelled}, nil)

		_, err := newService(repo).Cancel(context.Background(), "b1")
		require.ErrorIs(t, err, ErrCannotCancel)
		repo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("concurrent change", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("GetByID", mock.Anything, "b1").Return(paid("b1"), nil)
		repo.On("UpdateStatus", mock.Anything, "b1", domain.StatusCancelled, mock.Anything).Return(bookingRepo.ErrStatusConflict)

		_, err := newService(repo).Cancel(context.Background(), "b1")
		require.ErrorIs(t, err, ErrCannotCancel)
	})
}

func TestMarkScanned(t *testing.T) {
	tests := []struct {
		name    string
		booking *domain.Booking
		getErr  error
		wantErr error
	}{
		{name: "paid", booking: paid("b1")},
		{name: "not found", getErr: bookingRepo.ErrBookingNotFound, wantErr: ErrBookingNotFound},
		{name: "pending", booking: &domain.Booking{ID: "b1", Status: domain.StatusPending}, wantErr: ErrNotPaid},
		{name: "cancelled", booking: &domain.Booking{ID: "b1", Status: domain.StatusCancelled}, wantErr: ErrNotPaid},
		{name: "twice", booking: &domain.Booking{ID: "b1", Status: domain.StatusPaid, Scanned: true}, wantErr: ErrAlreadyScanned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepo{}
			repo.On("GetByID", mock.Anything, "b1").Return(tt.booking, tt.getErr)
			repo.On("MarkScanned", mock.Anything, "b1", now).Return(nil)

			resp, err := newService(repo).MarkScanned(context.Background(), "b1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "MarkScanned", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.True(t, resp.Scanned)
			assert.Equal(t, now, *resp.ScannedAt)
		})
	}
}

func TestMarkScanned_LostRace(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetByID", mock.Anything, "b1").Return(paid("b1"), nil).Once()
	repo.On("GetByID", mock.Anything, "b1").Return(&domain.Booking{ID: "b1", Status: domain.StatusPaid, Scanned: true}, nil).Once()
	repo.On("MarkScanned", mock.Anything, "b1", now).Return(bookingRepo.ErrStatusConflict)

	_, err := newService(repo).MarkScanned(context.Background(), "b1")
	require.ErrorIs(t, err, ErrAlreadyScanned)
}

func TestScanPayload(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetByID", mock.Anything, "b1").Return(paid("b1"), nil)
	repo.On("MarkScanned", mock.Anything, "b1", now).Return(nil)
	svc := newService(repo)

	payload := NewQRCodec("secret").Sign("b1")
	resp, err := svc.ScanPayload(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, "b1", resp.ID)

	forged := NewQRCodec("other").Sign("b1")
	_, err = svc.ScanPayload(context.Background(), forged)
	require.ErrorIs(t, err, ErrInvalidQRPayload)

	_, err = svc.ScanPayload(context.Background(), "b1")
	require.ErrorIs(t, err, ErrInvalidQRPayload)
}

func TestQRCodePNG(t *testing.T) {
	repo := &mockRepo{}
	booking := paid("b1")
	booking.QRCodeData = NewQRCodec("secret").Sign("b1")
	repo.On("GetByID", mock.Anything, "b1").Return(booking, nil)
	svc := newService(repo)

	png, err := svc.QRCodePNG(context.Background(), "b1", customer, 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = svc.QRCodePNG(context.Background(), "b1", stranger, 0)
	assert.True(t, errors.Is(err, ErrAccessDenied))
}
