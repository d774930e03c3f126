package domain

import "time"

// Cart серверная корзина покупателя, адресуемая непрозрачным токеном
type Cart struct {
	Token      string        `json:"token"`
	UserID     string        `json:"userId"`
	Items      []BookingItem `json:"items"`
	CouponCode *string       `json:"couponCode,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// QuantityFor сколько единиц с данным referenceId уже лежит в корзине
func (c *Cart) QuantityFor(referenceID string) int {
	if c == nil {
		return 0
	}
	total := 0
	for _, item := range c.Items {
		if item.ReferenceID == referenceID {
			total += item.Quantity
		}
	}
	return total
}

// InCartCounts количество единиц по каждому referenceId
func (c *Cart) InCartCounts() map[string]int {
	counts := make(map[string]int)
	if c == nil {
		return counts
	}
	for _, item := range c.Items {
		counts[item.ReferenceID] += item.Quantity
	}
	return counts
}

// AddItem добавляет позицию; одинаковые referenceId объединяются в одну позицию
func (c *Cart) AddItem(item BookingItem) {
	for i := range c.Items {
		if c.Items[i].Type == item.Type && c.Items[i].ReferenceID == item.ReferenceID {
			c.Items[i].Quantity += item.Quantity
			c.Items[i].Price = item.Price
			return
		}
	}
	c.Items = append(c.Items, item)
}

// RemoveItem удаляет позицию по id. Возвращает false, если позиции нет.
func (c *Cart) RemoveItem(itemID string) bool {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// IsEmpty returns true if the cart has no items
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}
