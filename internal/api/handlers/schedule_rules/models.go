package schedule_rules

import (
	"strings"
	"time"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	createRule "github.com/m04kA/RiverRun-BookingService/internal/usecase/create_schedule_rule"
	generateRules "github.com/m04kA/RiverRun-BookingService/internal/usecase/generate_schedule_rules"
	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

// Request модели

// CreateRuleRequest HTTP request model
type CreateRuleRequest struct {
	ActivityID string   `json:"activityId"`
	StaffIDs   []string `json:"staffIds"`
	StartDate  string   `json:"startDate"` // "2024-06-03"
	EndDate    string   `json:"endDate"`   // "2024-06-30"
	StartTime  string   `json:"startTime"` // "09:00"
	EndTime    string   `json:"endTime"`   // "11:00"
	Pattern    string   `json:"pattern"`   // DAILY | WEEKDAYS | WEEKENDS | CUSTOM
	CustomDays []string `json:"customDays,omitempty"`
}

// DurationRequest длительность периода для массовой генерации
type DurationRequest struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"` // WEEKS | MONTHS | YEARS
}

// GenerateRulesRequest HTTP request model для "Save Rule & Generate"
type GenerateRulesRequest struct {
	StartDate  string           `json:"startDate"`
	EndDate    *string          `json:"endDate,omitempty"`
	Duration   *DurationRequest `json:"duration,omitempty"`
	Pattern    string           `json:"pattern"`
	CustomDays []string         `json:"customDays,omitempty"`
	StartTime  *string          `json:"startTime,omitempty"` // по умолчанию 09:00
	EndTime    *string          `json:"endTime,omitempty"`   // по умолчанию 17:00
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateRuleRequest) ToUseCaseRequest() (*createRule.Request, error) {
	startDate, err := types.ParseDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := types.ParseDate(r.EndDate)
	if err != nil {
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createRule.Request{
		ActivityID: r.ActivityID,
		StaffIDs:   r.StaffIDs,
		StartDate:  startDate,
		EndDate:    endDate,
		StartTime:  startTime,
		EndTime:    endTime,
		Pattern:    domain.RecurrencePattern(strings.ToUpper(r.Pattern)),
		CustomDays: r.CustomDays,
	}, nil
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateRulesRequest) ToUseCaseRequest() (*generateRules.Request, error) {
	startDate, err := types.ParseDate(r.StartDate)
	if err != nil {
		return nil, err
	}

	req := &generateRules.Request{
		StartDate:  startDate,
		Pattern:    domain.RecurrencePattern(strings.ToUpper(r.Pattern)),
		CustomDays: r.CustomDays,
	}

	if r.EndDate != nil {
		endDate, err := types.ParseDate(*r.EndDate)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if r.Duration != nil {
		req.Duration = &generateRules.Duration{
			Value: r.Duration.Value,
			Unit:  generateRules.DurationUnit(strings.ToUpper(r.Duration.Unit)),
		}
	}

	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &start
	}

	if r.EndTime != nil {
		end, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &end
	}

	return req, nil
}

// Response модели

// RuleResponse правило расписания
type RuleResponse struct {
	ID         string    `json:"id"`
	ActivityID string    `json:"activityId"`
	StaffIDs   []string  `json:"staffIds"`
	StartDate  string    `json:"startDate"`
	EndDate    string    `json:"endDate"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Pattern    string    `json:"pattern"`
	CustomDays []string  `json:"customDays,omitempty"`
	Price      float64   `json:"price"`
	Capacity   int       `json:"capacity"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateRuleResponse созданное правило и число слотов в подходящий день
type CreateRuleResponse struct {
	RuleResponse
	SlotsPerDay int `json:"slotsPerDay"`
}

// SkippedResponse активность, для которой правило не создано
type SkippedResponse struct {
	ActivityID string `json:"activityId"`
	Reason     string `json:"reason"`
}

// GenerateRulesResponse итог массовой генерации
type GenerateRulesResponse struct {
	EndDate string            `json:"endDate"`
	Created []RuleResponse    `json:"created"`
	Skipped []SkippedResponse `json:"skipped"`
}

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(rule *domain.ScheduleRule) RuleResponse {
	staffIDs := rule.StaffIDs
	if staffIDs == nil {
		staffIDs = []string{}
	}
	return RuleResponse{
		ID:         rule.ID,
		ActivityID: rule.ActivityID,
		StaffIDs:   staffIDs,
		StartDate:  rule.StartDate.String(),
		EndDate:    rule.EndDate.String(),
		StartTime:  rule.StartTime.String(),
		EndTime:    rule.EndTime.String(),
		Pattern:    string(rule.Pattern),
		CustomDays: rule.CustomDays,
		Price:      rule.Price.InexactFloat64(),
		Capacity:   rule.Capacity,
		CreatedAt:  rule.CreatedAt,
	}
}

// FromDomainRuleList конвертирует список правил
func FromDomainRuleList(rules []*domain.ScheduleRule) []RuleResponse {
	result := make([]RuleResponse, 0, len(rules))
	for _, rule := range rules {
		result = append(result, FromDomainRule(rule))
	}
	return result
}

// FromGenerateResponse конвертирует ответ массовой генерации
func FromGenerateResponse(resp *generateRules.Response) *GenerateRulesResponse {
	skipped := make([]SkippedResponse, 0, len(resp.Skipped))
	for _, s := range resp.Skipped {
		skipped = append(skipped, SkippedResponse{ActivityID: s.ActivityID, Reason: s.Reason})
	}

	return &GenerateRulesResponse{
		EndDate: resp.EndDate.String(),
		Created: FromDomainRuleList(resp.Created),
		Skipped: skipped,
	}
}
