package list_slots

import (
	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

// Request модель запроса списка слотов
type Request struct {
	UserID     string     // ID пользователя (владелец корзины)
	Date       types.Date // Дата
	CartToken  *string    // Корзина вызывающего: её позиции вычитаются из доступных мест
	ActivityID *string    // Фильтр по активности (опционально)
}

// Response модель ответа со списком слотов
type Response struct {
	Date  types.Date
	Slots []Slot
}

// Slot слот с доступностью для вызывающего
type Slot struct {
	*domain.Slot
	InCart    int // мест этого слота в корзине вызывающего
	Available int // capacity - bookedCount - InCart, не меньше нуля
}
