package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPaid      BookingStatus = "PAID"
	StatusPending   BookingStatus = "PENDING"
	StatusCancelled BookingStatus = "CANCELLED"
)

// IsValid returns true for a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPaid, StatusPending, StatusCancelled:
		return true
	}
	return false
}

// ItemType тип позиции заказа
type ItemType string

const (
	ItemTicket   ItemType = "TICKET"
	ItemActivity ItemType = "ACTIVITY"
)

// IsValid returns true for a known item type
func (t ItemType) IsValid() bool {
	return t == ItemTicket || t == ItemActivity
}

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "CARD"
	PaymentCash   PaymentMethod = "CASH"
	PaymentOnline PaymentMethod = "ONLINE"
)

// IsValid returns true for a known payment method
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCard, PaymentCash, PaymentOnline:
		return true
	}
	return false
}

// BookingItem позиция заказа. Название и цена фиксируются на момент покупки
// и не зависят от последующих изменений каталога.
type BookingItem struct {
	ID          string
	Type        ItemType
	ReferenceID string // id билета или слота
	Title       string
	Subtitle    string
	Quantity    int
	Price       decimal.Decimal // цена за единицу
}

// LineTotal стоимость позиции
func (i *BookingItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Booking represents a completed purchase
type Booking struct {
	ID            string
	UserID        string
	CustomerName  string
	CustomerEmail string
	Items         []BookingItem

	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	CouponCode     *string
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal

	Status        BookingStatus
	PaymentMethod PaymentMethod
	TransactionID *string

	// Продажа через кассу
	CreatedByStaffID    *string
	CreatedByStaffEmail *string

	Scanned    bool
	ScannedAt  *time.Time
	QRCodeData string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking holds slot capacity
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPaid || b.Status == StatusPending
}

// IsPOS returns true if the booking was sold at the counter by staff
func (b *Booking) IsPOS() bool {
	return b.CreatedByStaffID != nil && *b.CreatedByStaffID != ""
}

// Channel канал продажи для метрик
func (b *Booking) Channel() string {
	if b.IsPOS() {
		return ChannelPOS
	}
	return ChannelOnline
}

// ActivityQuantities суммирует количество мест по каждому слоту в заказе
func ActivityQuantities(items []BookingItem) map[string]int {
	result := make(map[string]int)
	for _, item := range items {
		if item.Type == ItemActivity {
			result[item.ReferenceID] += item.Quantity
		}
	}
	return result
}

// BookingsFilter фильтр списка бронирований
type BookingsFilter struct {
	UserID *string        // только бронирования пользователя (опционально)
	Status *BookingStatus // фильтр по статусу (опционально)
	From   *time.Time     // created_at >= From (опционально)
	To     *time.Time     // created_at < To (опционально)
	Limit  uint64
	Offset uint64
}
