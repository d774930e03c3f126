package models

import (
	"time"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
)

// UpdateSettingsRequest запрос на обновление настроек
type UpdateSettingsRequest struct {
	TaxPercentage *float64 `json:"taxPercentage"`
}

// SettingsResponse ответ с настройками магазина
type SettingsResponse struct {
	TaxPercentage float64    `json:"taxPercentage"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"` // nil, пока настройки не сохранялись
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.SystemSettings) *SettingsResponse {
	resp := &SettingsResponse{TaxPercentage: s.TaxPercentage.InexactFloat64()}
	if !s.UpdatedAt.IsZero() {
		updated := s.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}
