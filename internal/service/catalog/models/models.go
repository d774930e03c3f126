package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
)

// Request модели

// ActivityRequest запрос на создание или замену активности
type ActivityRequest struct {
	CategoryID       string   `json:"categoryId"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Price            float64  `json:"price"`
	DurationMinutes  int      `json:"durationMinutes"`
	CapacityPerSlot  int      `json:"capacityPerSlot"`
	Color            string   `json:"color"`
	AssignedStaffIDs []string `json:"assignedStaffIds"`
}

// ToDomain конвертирует запрос в domain модель
func (r *ActivityRequest) ToDomain(id string) *domain.Activity {
	staffIDs := r.AssignedStaffIDs
	if staffIDs == nil {
		staffIDs = []string{}
	}
	return &domain.Activity{
		ID:               id,
		CategoryID:       r.CategoryID,
		Title:            r.Title,
		Description:      r.Description,
		Price:            decimal.NewFromFloat(r.Price).Round(2),
		DurationMinutes:  r.DurationMinutes,
		CapacityPerSlot:  r.CapacityPerSlot,
		Color:            r.Color,
		AssignedStaffIDs: staffIDs,
	}
}

// CategoryRequest запрос на создание категории
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// StaffRequest запрос на создание или замену сотрудника
type StaffRequest struct {
	Name     string                `json:"name"`
	Role     string                `json:"role"`
	Schedule domain.WeeklySchedule `json:"schedule"`
}

// TicketRequest запрос на создание билета
type TicketRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

// Response модели

// ActivityResponse ответ с данными активности
type ActivityResponse struct {
	ID               string    `json:"id"`
	CategoryID       string    `json:"categoryId"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Price            float64   `json:"price"`
	DurationMinutes  int       `json:"durationMinutes"`
	CapacityPerSlot  int       `json:"capacityPerSlot"`
	Color            string    `json:"color"`
	AssignedStaffIDs []string  `json:"assignedStaffIds"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CategoryResponse ответ с данными категории
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// StaffResponse ответ с данными сотрудника
type StaffResponse struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Role      string                `json:"role"`
	Schedule  domain.WeeklySchedule `json:"schedule"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// TicketResponse ответ с данными билета
type TicketResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Методы конвертации

// FromDomainActivity конвертирует domain модель в DTO
func FromDomainActivity(a *domain.Activity) ActivityResponse {
	staffIDs := a.AssignedStaffIDs
	if staffIDs == nil {
		staffIDs = []string{}
	}
	return ActivityResponse{
		ID:               a.ID,
		CategoryID:       a.CategoryID,
		Title:            a.Title,
		Description:      a.Description,
		Price:            a.Price.InexactFloat64(),
		DurationMinutes:  a.DurationMinutes,
		CapacityPerSlot:  a.CapacityPerSlot,
		Color:            a.Color,
		AssignedStaffIDs: staffIDs,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// FromDomainCategory конвертирует domain модель в DTO
func FromDomainCategory(c *domain.ActivityCategory) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

// FromDomainStaff конвертирует domain модель в DTO
func FromDomainStaff(s *domain.Staff) StaffResponse {
	schedule := s.Schedule
	if schedule == nil {
		schedule = domain.WeeklySchedule{}
	}
	return StaffResponse{
		ID:        s.ID,
		Name:      s.Name,
		Role:      s.Role,
		Schedule:  schedule,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromDomainTicket конвертирует domain модель в DTO
func FromDomainTicket(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Price:       t.Price.InexactFloat64(),
		Category:    string(t.Category),
		CreatedAt:   t.CreatedAt,
	}
}
