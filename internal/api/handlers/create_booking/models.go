package create_booking

import (
	"strings"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	"github.com/m04kA/RiverRun-BookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/RiverRun-BookingService/internal/usecase/create_booking"
)

// ItemRequest позиция заказа. Цена и название определяются на сервере.
type ItemRequest struct {
	Type        string `json:"type"` // TICKET | ACTIVITY
	ReferenceID string `json:"referenceId"`
	Quantity    int    `json:"quantity"`
}

// CreateBookingRequest HTTP request model.
// Позиции берутся из корзины (cartToken) либо передаются явно (items).
type CreateBookingRequest struct {
	CartToken     *string       `json:"cartToken,omitempty"`
	Items         []ItemRequest `json:"items,omitempty"`
	CustomerName  *string       `json:"customerName,omitempty"`
	CustomerEmail *string       `json:"customerEmail,omitempty"`
	CouponCode    *string       `json:"couponCode,omitempty"`
	PaymentMethod string        `json:"paymentMethod,omitempty"` // CARD | CASH | ONLINE
	TransactionID *string       `json:"transactionId,omitempty"`

	// Продажа через кассу (только ADMIN и STAFF)
	POS        bool    `json:"pos,omitempty"`
	StaffEmail *string `json:"staffEmail,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID string) *createBooking.Request {
	items := make([]createBooking.ItemRequest, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, createBooking.ItemRequest{
			Type:        domain.ItemType(strings.ToUpper(item.Type)),
			ReferenceID: item.ReferenceID,
			Quantity:    item.Quantity,
		})
	}

	req := &createBooking.Request{
		UserID:        userID,
		CartToken:     r.CartToken,
		Items:         items,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CouponCode:    r.CouponCode,
		PaymentMethod: domain.PaymentMethod(strings.ToUpper(r.PaymentMethod)),
		TransactionID: r.TransactionID,
	}

	if r.POS {
		req.CreatedByStaffID = &userID
		req.CreatedByStaffEmail = r.StaffEmail
	}

	return req
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.BookingResponse {
	return models.FromDomainBooking(resp.Booking)
}
