package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TicketCategory категория входного билета
type TicketCategory string

const (
	TicketAdult TicketCategory = "ADULT"
	TicketChild TicketCategory = "CHILD"
	TicketVIP   TicketCategory = "VIP"
)

// IsValid returns true for a known ticket category
func (c TicketCategory) IsValid() bool {
	switch c {
	case TicketAdult, TicketChild, TicketVIP:
		return true
	}
	return false
}

// Ticket входной билет в парк
type Ticket struct {
	ID          string
	Title       string
	Description string
	Price       decimal.Decimal
	Category    TicketCategory
	CreatedAt   time.Time
}
