package create_booking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
)

// Имя покупателя для продаж через кассу без указанного имени
const walkInCustomerName = "Walk-in Customer"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.UserID) == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.PaymentMethod == "" {
		req.PaymentMethod = domain.PaymentCard
	}
	if !req.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}
	// Наличные и перевод по id принимает только касса
	if !req.IsPOS() && req.PaymentMethod != domain.PaymentCard {
		return fmt.Errorf("%w: payment method %s is available only at the counter", ErrInvalidInput, req.PaymentMethod)
	}

	if req.CartToken == nil && len(req.Items) == 0 {
		return ErrEmptyCart
	}

	return validateItems(req.Items)
}

// validateItems проверяет позиции заказа
func validateItems(items []ItemRequest) error {
	if len(items) > domain.MaxCartItems {
		return fmt.Errorf("%w: at most %d items per order", ErrInvalidInput, domain.MaxCartItems)
	}

	for i, item := range items {
		if !item.Type.IsValid() {
			return fmt.Errorf("%w: items[%d]: unknown type %q", ErrInvalidInput, i, item.Type)
		}
		if strings.TrimSpace(item.ReferenceID) == "" {
			return fmt.Errorf("%w: items[%d]: referenceId is required", ErrInvalidInput, i)
		}
		if item.Quantity < 1 || item.Quantity > domain.MaxItemQuantity {
			return fmt.Errorf("%w: items[%d]: quantity must be between 1 and %d", ErrInvalidInput, i, domain.MaxItemQuantity)
		}
	}

	return nil
}

// itemsFromCart переводит позиции корзины в позиции запроса; цены корзины не используются
func itemsFromCart(cart *domain.Cart) []ItemRequest {
	items := make([]ItemRequest, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, ItemRequest{
			Type:        item.Type,
			ReferenceID: item.ReferenceID,
			Quantity:    item.Quantity,
		})
	}
	return items
}

// sortedSlotIDs возвращает id слотов из заказа в отсортированном порядке
func sortedSlotIDs(quantities map[string]int) []string {
	ids := make([]string, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func valueOr(p *string, fallback string) string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return fallback
	}
	return strings.TrimSpace(*p)
}
