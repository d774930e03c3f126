package manual_slots

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/RiverRun-BookingService/internal/service/slots/models"
	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

// CreateSlotRequest HTTP request model
type CreateSlotRequest struct {
	ActivityID string   `json:"activityId"`
	StaffIDs   []string `json:"staffIds"`
	Date       string   `json:"date"`              // "2024-06-03"
	StartTime  string   `json:"startTime"`         // "09:00"
	EndTime    *string  `json:"endTime,omitempty"` // по умолчанию startTime + длительность активности
	Price      *float64 `json:"price,omitempty"`
	Capacity   *int     `json:"capacity,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateSlotRequest) ToServiceRequest() (*models.CreateSlotRequest, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &models.CreateSlotRequest{
		ActivityID: r.ActivityID,
		StaffIDs:   r.StaffIDs,
		Date:       date,
		StartTime:  start,
		Capacity:   r.Capacity,
	}

	if r.EndTime != nil {
		end, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &end
	}

	if r.Price != nil {
		price := decimal.NewFromFloat(*r.Price)
		req.Price = &price
	}

	return req, nil
}
