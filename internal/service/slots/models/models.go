package models

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

// CreateSlotRequest запрос на создание ручного слота.
// Цена и вместимость по умолчанию берутся из активности.
type CreateSlotRequest struct {
	ActivityID string
	StaffIDs   []string
	Date       types.Date
	StartTime  types.TimeString
	EndTime    *types.TimeString // по умолчанию StartTime + длительность активности
	Price      *decimal.Decimal
	Capacity   *int
}
