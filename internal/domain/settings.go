package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SystemSettings глобальные настройки магазина (одна запись)
type SystemSettings struct {
	TaxPercentage decimal.Decimal
	UpdatedAt     time.Time
}

// DefaultTaxPercentage ставка налога, если настройки ещё не сохранялись
var DefaultTaxPercentage = decimal.NewFromInt(5)
