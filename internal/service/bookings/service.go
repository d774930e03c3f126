package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/RiverRun-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с оформленными бронированиями
type Service struct {
	bookingRepo  BookingRepository
	qr           *QRCodec
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	qr *QRCodec,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		qr:           qr,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID.
// Покупатель видит только своё бронирование, ADMIN и STAFF видят любое.
func (s *Service) GetByID(ctx context.Context, id string, caller models.Caller) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, caller.UserID)

	booking, err := s.getAccessible(ctx, "GetByID", id, caller)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// List получает список бронирований с фильтрацией
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for user=%s, role=%s, status=%v", req.Caller.UserID, req.Caller.Role, req.Status)

	filter, ok := req.ToDomainFilter()
	if !ok {
		s.logger.Warn("List: invalid status=%v", req.Status)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование. Отменённый заказ освобождает места в слотах.
func (s *Service) Cancel(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s", id)

	booking, err := s.get(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", id, booking.Status)
		return nil, ErrCannotCancel
	}

	err = s.bookingRepo.UpdateStatus(ctx, id, domain.StatusCancelled, []domain.BookingStatus{domain.StatusPaid, domain.StatusPending})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("Cancel: booking id=%s changed status concurrently", id)
			return nil, ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
	}

	booking.Status = domain.StatusCancelled
	s.logger.Info("Cancel: successfully cancelled booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// MarkScanned отмечает проход по бронированию на входе
func (s *Service) MarkScanned(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("MarkScanned: scanning booking id=%s", id)

	booking, err := s.get(ctx, "MarkScanned", id)
	if err != nil {
		return nil, err
	}

	if err := checkScannable(booking); err != nil {
		s.logger.Warn("MarkScanned: booking id=%s rejected: %v", id, err)
		return nil, err
	}

	now := s.timeProvider.Now()
	if err := s.bookingRepo.MarkScanned(ctx, id, now); err != nil {
		if !errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Error("MarkScanned: repository error for booking id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: MarkScanned - repository error: %w", ErrInternal, err)
		}

		// Состояние изменилось между чтением и обновлением
		current, getErr := s.get(ctx, "MarkScanned", id)
		if getErr != nil {
			return nil, getErr
		}
		if err := checkScannable(current); err != nil {
			s.logger.Warn("MarkScanned: booking id=%s rejected: %v", id, err)
			return nil, err
		}
		return nil, fmt.Errorf("%w: MarkScanned - conditional update failed", ErrInternal)
	}

	booking.Scanned = true
	booking.ScannedAt = &now

	s.logger.Info("MarkScanned: successfully scanned booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// ScanPayload проверяет подпись QR-кода и отмечает проход
func (s *Service) ScanPayload(ctx context.Context, payload string) (*models.BookingResponse, error) {
	id, err := s.qr.Verify(payload)
	if err != nil {
		s.logger.Warn("ScanPayload: %v", err)
		return nil, err
	}
	return s.MarkScanned(ctx, id)
}

// QRCodePNG возвращает PNG с QR-кодом бронирования
func (s *Service) QRCodePNG(ctx context.Context, id string, caller models.Caller, size int) ([]byte, error) {
	booking, err := s.getAccessible(ctx, "QRCodePNG", id, caller)
	if err != nil {
		return nil, err
	}

	payload := booking.QRCodeData
	if payload == "" {
		payload = s.qr.Sign(booking.ID)
	}

	png, err := RenderPNG(payload, size)
	if err != nil {
		s.logger.Error("QRCodePNG: failed to render qr for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: QRCodePNG - render: %w", ErrInternal, err)
	}

	return png, nil
}

// Вспомогательные методы

func (s *Service) get(ctx context.Context, op, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) getAccessible(ctx context.Context, op, id string, caller models.Caller) (*domain.Booking, error) {
	booking, err := s.get(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != caller.UserID && !caller.Role.CanSeeAllBookings() {
		s.logger.Warn("%s: access denied for user=%s to booking id=%s", op, caller.UserID, id)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

// checkScannable проверяет, что по бронированию можно пройти
func checkScannable(b *domain.Booking) error {
	if b.Status != domain.StatusPaid {
		return fmt.Errorf("%w: status=%s", ErrNotPaid, b.Status)
	}
	if b.Scanned {
		return ErrAlreadyScanned
	}
	return nil
}
