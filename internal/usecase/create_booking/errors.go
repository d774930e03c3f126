package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCart возвращается, когда в заказе нет позиций
	ErrEmptyCart = errors.New("create_booking: cart is empty")

	// ErrCartNotFound возвращается, когда корзина не найдена, истекла или принадлежит другому пользователю
	ErrCartNotFound = errors.New("create_booking: cart not found")

	// ErrItemNotFound возвращается, когда билет или слот из заказа не существует
	ErrItemNotFound = errors.New("create_booking: item not found")

	// ErrSlotInPast возвращается при попытке купить слот на прошедшую дату
	ErrSlotInPast = errors.New("create_booking: slot date is in the past")

	// ErrSlotNotAvailable возвращается, когда в слоте не хватает мест
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidCoupon возвращается, когда купон не найден или отключен
	ErrInvalidCoupon = errors.New("create_booking: invalid coupon")

	// ErrPaymentRequired возвращается, когда для способа оплаты не передан id транзакции
	ErrPaymentRequired = errors.New("create_booking: transaction id is required")

	// ErrPaymentFailed возвращается, когда платёж не подтверждён платёжным сервисом
	ErrPaymentFailed = errors.New("create_booking: payment is not confirmed")

	// ErrPaymentAlreadyUsed возвращается, когда id транзакции уже оплатил другой заказ
	ErrPaymentAlreadyUsed = errors.New("create_booking: transaction id already used")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// SlotUnavailableError слот, на котором сорвалась покупка. errors.Is(err, ErrSlotNotAvailable) == true.
type SlotUnavailableError struct {
	SlotID string
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("%s: slotId=%s", ErrSlotNotAvailable, e.SlotID)
}

func (e *SlotUnavailableError) Unwrap() error {
	return ErrSlotNotAvailable
}
