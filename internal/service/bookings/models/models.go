package models

import (
	"time"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

// Ограничения пагинации списка бронирований
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Request модели

// Caller пользователь, выполняющий запрос
type Caller struct {
	UserID string
	Role   domain.UserRole
}

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	Caller Caller
	Status *string     // фильтр по статусу (опционально)
	From   *types.Date // дата создания с (включительно)
	To     *types.Date // дата создания по (включительно)
	Limit  uint64
	Offset uint64
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, bool) {
	filter := domain.BookingsFilter{
		Limit:  r.Limit,
		Offset: r.Offset,
	}

	if filter.Limit == 0 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}

	// Покупатель видит только свои заказы
	if !r.Caller.Role.CanSeeAllBookings() {
		filter.UserID = &r.Caller.UserID
	}

	if r.Status != nil {
		status := domain.BookingStatus(*r.Status)
		if !status.IsValid() {
			return filter, false
		}
		filter.Status = &status
	}

	if r.From != nil {
		from := r.From.Time()
		filter.From = &from
	}
	if r.To != nil {
		to := r.To.AddDays(1).Time()
		filter.To = &to
	}

	return filter, true
}

// Response модели

// BookingItemResponse позиция заказа
type BookingItemResponse struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	ReferenceID string  `json:"referenceId"`
	Title       string  `json:"title"`
	Subtitle    string  `json:"subtitle,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            string                `json:"id"`
	UserID        string                `json:"userId"`
	CustomerName  string                `json:"customerName"`
	CustomerEmail string                `json:"customerEmail"`
	Items         []BookingItemResponse `json:"items"`

	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discountAmount"`
	CouponCode     *string `json:"couponCode,omitempty"`
	TaxAmount      float64 `json:"taxAmount"`
	TotalAmount    float64 `json:"totalAmount"`

	Status        string  `json:"status"`
	PaymentMethod string  `json:"paymentMethod"`
	TransactionID *string `json:"transactionId,omitempty"`

	CreatedByStaffID    *string `json:"createdByStaffId,omitempty"`
	CreatedByStaffEmail *string `json:"createdByStaffEmail,omitempty"`

	Scanned    bool       `json:"scanned"`
	ScannedAt  *time.Time `json:"scannedAt,omitempty"`
	QRCodeData string     `json:"qrCodeData"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	items := make([]BookingItemResponse, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, BookingItemResponse{
			ID:          item.ID,
			Type:        string(item.Type),
			ReferenceID: item.ReferenceID,
			Title:       item.Title,
			Subtitle:    item.Subtitle,
			Quantity:    item.Quantity,
			Price:       item.Price.InexactFloat64(),
		})
	}

	return &BookingResponse{
		ID:                  b.ID,
		UserID:              b.UserID,
		CustomerName:        b.CustomerName,
		CustomerEmail:       b.CustomerEmail,
		Items:               items,
		Subtotal:            b.Subtotal.InexactFloat64(),
		DiscountAmount:      b.DiscountAmount.InexactFloat64(),
		CouponCode:          b.CouponCode,
		TaxAmount:           b.TaxAmount.InexactFloat64(),
		TotalAmount:         b.TotalAmount.InexactFloat64(),
		Status:              string(b.Status),
		PaymentMethod:       string(b.PaymentMethod),
		TransactionID:       b.TransactionID,
		CreatedByStaffID:    b.CreatedByStaffID,
		CreatedByStaffEmail: b.CreatedByStaffEmail,
		Scanned:             b.Scanned,
		ScannedAt:           b.ScannedAt,
		QRCodeData:          b.QRCodeData,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
