package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCart_AddItemMergesSameReference(t *testing.T) {
	cart := &Cart{}

	cart.AddItem(BookingItem{ID: "i1", Type: ItemActivity, ReferenceID: "gen_2024-06-03_a1_0900", Quantity: 2, Price: dec("30")})
	cart.AddItem(BookingItem{ID: "i2", Type: ItemActivity, ReferenceID: "gen_2024-06-03_a1_0900", Quantity: 1, Price: dec("30")})
	cart.AddItem(BookingItem{ID: "i3", Type: ItemTicket, ReferenceID: "t1", Quantity: 1, Price: dec("25")})

	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 3, cart.QuantityFor("gen_2024-06-03_a1_0900"))
	assert.Equal(t, map[string]int{"gen_2024-06-03_a1_0900": 3, "t1": 1}, cart.InCartCounts())
}

func TestCart_RemoveItem(t *testing.T) {
	cart := &Cart{Items: []BookingItem{{ID: "i1", ReferenceID: "t1", Quantity: 1}}}

	assert.False(t, cart.RemoveItem("missing"))
	assert.True(t, cart.RemoveItem("i1"))
	assert.True(t, cart.IsEmpty())
}

func TestCart_NilSafe(t *testing.T) {
	var cart *Cart
	assert.Equal(t, 0, cart.QuantityFor("t1"))
	assert.Empty(t, cart.InCartCounts())
	assert.True(t, cart.IsEmpty())
}
