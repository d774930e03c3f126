package bookings

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/slot"
	"github.com/m04kA/RiverRun-BookingService/internal/service/slots"
	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

// memLedger журнал заказов, из которого считается занятость слотов
type memLedger struct {
	mu       sync.Mutex
	bookings map[string]*domain.Booking
}

func (l *memLedger) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (l *memLedger) List(context.Context, domain.BookingsFilter) ([]*domain.Booking, error) {
	return nil, nil
}

func (l *memLedger) UpdateStatus(_ context.Context, id string, status domain.BookingStatus, from []domain.BookingStatus) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.bookings[id]
	if !ok || !slices.Contains(from, b.Status) {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = status
	return nil
}

func (l *memLedger) MarkScanned(context.Context, string, time.Time) error { return nil }

func (l *memLedger) GetBookedQuantities(_ context.Context, slotIDs []string) (map[string]int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	result := make(map[string]int, len(slotIDs))
	for _, b := range l.bookings {
		if slices.Contains(domain.InactiveStatuses, b.Status) {
			continue
		}
		for slotID, qty := range domain.ActivityQuantities(b.Items) {
			if slices.Contains(slotIDs, slotID) {
				result[slotID] += qty
			}
		}
	}
	return result, nil
}

type oneSlotRepo struct{ slot domain.Slot }

func (r oneSlotRepo) Create(_ context.Context, s *domain.Slot) (*domain.Slot, error) { return s, nil }
func (r oneSlotRepo) GetByDate(context.Context, types.Date) ([]*domain.Slot, error) {
	return nil, nil
}
func (r oneSlotRepo) Delete(context.Context, string) error { return nil }

func (r oneSlotRepo) GetByID(_ context.Context, id string) (*domain.Slot, error) {
	if id != r.slot.ID {
		return nil, slotRepo.ErrSlotNotFound
	}
	cp := r.slot
	return &cp, nil
}

func TestCancel_FreesSlotSeat(t *testing.T) {
	const slotID = "s-sunset"
	ledger := &memLedger{bookings: map[string]*domain.Booking{
		"b1": {
			ID:     "b1",
			UserID: "u1",
			Status: domain.StatusPaid,
			Items: []domain.BookingItem{{
				ID:          "i1",
				Type:        domain.ItemActivity,
				ReferenceID: slotID,
				Quantity:    1,
				Price:       decimal.NewFromInt(40),
			}},
		},
	}}
	engine := slots.NewEngine(nil, oneSlotRepo{slot: domain.Slot{
		ID:       slotID,
		Date:     types.MustParseDate("2024-06-03"),
		Capacity: 1,
	}}, nil, ledger, nil, nopLogger{})
	svc := NewService(ledger, NewQRCodec("secret"), nopLogger{}).WithTimeProvider(fixedTime{t: now})

	before, err := engine.FindSlot(context.Background(), slotID)
	require.NoError(t, err)
	assert.Equal(t, 1, before.BookedCount)
	assert.Zero(t, before.Available(0))

	resp, err := svc.Cancel(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)

	after, err := engine.FindSlot(context.Background(), slotID)
	require.NoError(t, err)
	assert.Zero(t, after.BookedCount)
	assert.Equal(t, 1, after.Available(0))

	_, err = svc.Cancel(context.Background(), "b1")
	require.ErrorIs(t, err, ErrCannotCancel)

	again, err := engine.FindSlot(context.Background(), slotID)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Available(0))
}
