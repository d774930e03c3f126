package list_slots

import (
	"strings"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	listSlots "github.com/m04kA/RiverRun-BookingService/internal/usecase/list_slots"
	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date  types.Date     `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

// SlotResponse слот с доступностью для вызывающего
type SlotResponse struct {
	ID            string   `json:"id"`
	ActivityID    string   `json:"activityId"`
	ActivityTitle string   `json:"activityTitle"`
	StaffIDs      []string `json:"staffIds"`
	Date          string   `json:"date"`
	StartTime     string   `json:"startTime"`
	EndTime       string   `json:"endTime"`
	Price         float64  `json:"price"`
	Capacity      int      `json:"capacity"`
	BookedCount   int      `json:"bookedCount"`
	InCart        int      `json:"inCart"`
	Available     int      `json:"available"`
	IsGenerated   bool     `json:"isGenerated"`
	RuleID        string   `json:"ruleId,omitempty"`
}

// FromDomainSlot конвертирует слот. inCart - места этого слота в корзине вызывающего.
func FromDomainSlot(s *domain.Slot, inCart int) SlotResponse {
	staffIDs := s.StaffIDs
	if staffIDs == nil {
		staffIDs = []string{}
	}
	return SlotResponse{
		ID:            s.ID,
		ActivityID:    s.ActivityID,
		ActivityTitle: s.ActivityTitle,
		StaffIDs:      staffIDs,
		Date:          s.Date.String(),
		StartTime:     s.StartTime.String(),
		EndTime:       s.EndTime.String(),
		Price:         s.Price.InexactFloat64(),
		Capacity:      s.Capacity,
		BookedCount:   s.BookedCount,
		InCart:        inCart,
		Available:     s.Available(inCart),
		IsGenerated:   s.IsGenerated,
		RuleID:        s.RuleID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, FromDomainSlot(slot.Slot, slot.InCart))
	}

	return &SlotsResponse{
		Date:  resp.Date,
		Slots: slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(userID, dateStr, cartToken, activityID string) (*listSlots.Request, error) {
	date, err := types.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	req := &listSlots.Request{
		UserID: userID,
		Date:   date,
	}
	if token := strings.TrimSpace(cartToken); token != "" {
		req.CartToken = &token
	}
	if id := strings.TrimSpace(activityID); id != "" {
		req.ActivityID = &id
	}

	return req, nil
}
