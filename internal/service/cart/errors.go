package cart

import (
	"errors"
	"fmt"
)

var (
	// ErrCartNotFound возвращается, когда корзина не найдена, истекла или принадлежит другому пользователю
	ErrCartNotFound = errors.New("cart: cart not found")

	// ErrItemNotFound возвращается, когда позиции, билета или слота нет
	ErrItemNotFound = errors.New("cart: item not found")

	// ErrSlotInPast возвращается при добавлении слота на прошедшую дату
	ErrSlotInPast = errors.New("cart: slot date is in the past")

	// ErrSlotNotAvailable возвращается, когда в слоте не хватает мест
	ErrSlotNotAvailable = errors.New("cart: slot is not available")

	// ErrInvalidCoupon возвращается, когда купон не найден или отключен
	ErrInvalidCoupon = errors.New("cart: invalid coupon")

	// ErrCartFull возвращается при превышении числа позиций
	ErrCartFull = errors.New("cart: too many items")

	// ErrCartBusy возвращается, когда корзину параллельно меняют другие запросы
	ErrCartBusy = errors.New("cart: cart is being modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cart: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("cart: internal error")
)

// SlotUnavailableError слот, в котором не хватило мест. errors.Is(err, ErrSlotNotAvailable) == true.
type SlotUnavailableError struct {
	SlotID    string
	Available int
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("%s: slotId=%s, available=%d", ErrSlotNotAvailable, e.SlotID, e.Available)
}

func (e *SlotUnavailableError) Unwrap() error {
	return ErrSlotNotAvailable
}
