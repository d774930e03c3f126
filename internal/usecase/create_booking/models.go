package create_booking

import "github.com/m04kA/RiverRun-BookingService/internal/domain"

// ItemRequest позиция заказа от клиента. Цена и название берутся на сервере.
type ItemRequest struct {
	Type        domain.ItemType
	ReferenceID string
	Quantity    int
}

// Request модель запроса на оформление заказа
type Request struct {
	UserID string

	// Источник позиций: корзина либо явный список
	CartToken *string
	Items     []ItemRequest

	CustomerName  *string // используется, если профиль недоступен, и для продаж через кассу
	CustomerEmail *string
	CouponCode    *string // по умолчанию купон из корзины

	PaymentMethod domain.PaymentMethod
	TransactionID *string

	// Продажа через кассу
	CreatedByStaffID    *string
	CreatedByStaffEmail *string
}

// IsPOS returns true if the order is placed by staff at the counter
func (r *Request) IsPOS() bool {
	return r.CreatedByStaffID != nil && *r.CreatedByStaffID != ""
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
