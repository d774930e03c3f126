package schedule_rules

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/RiverRun-BookingService/internal/api/handlers"
	"github.com/m04kA/RiverRun-BookingService/internal/service/slots"
	createRule "github.com/m04kA/RiverRun-BookingService/internal/usecase/create_schedule_rule"
	generateRules "github.com/m04kA/RiverRun-BookingService/internal/usecase/generate_schedule_rules"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidRange       = "некорректный период или окно времени"
	msgInvalidPattern     = "некорректный шаблон повторения"
	msgInvalidDuration    = "укажите endDate или положительную длительность в WEEKS, MONTHS или YEARS"
	msgInvalidData        = "некорректные данные правила"
	msgActivityNotFound   = "активность не найдена"
	msgStaffNotQualified  = "сотрудник не допущен к активности"
	msgRuleOverlap        = "правило пересекается с существующим правилом активности"
	msgRuleNotFound       = "правило расписания не найдено"
)

type Handler struct {
	engine   RuleEngine
	create   CreateRuleUseCase
	generate GenerateRulesUseCase
	logger   Logger
}

func NewHandler(engine RuleEngine, create CreateRuleUseCase, generate GenerateRulesUseCase, logger Logger) *Handler {
	return &Handler{
		engine:   engine,
		create:   create,
		generate: generate,
		logger:   logger,
	}
}

// List GET /api/v1/schedule-rules?activityId=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var activityID *string
	if id := strings.TrimSpace(r.URL.Query().Get("activityId")); id != "" {
		activityID = &id
	}

	rules, err := h.engine.ListRules(r.Context(), activityID)
	if err != nil {
		h.logger.Error("GET /schedule-rules - Failed to list rules: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule-rules - Rules retrieved successfully: count=%d", len(rules))
	handlers.RespondJSON(w, http.StatusOK, FromDomainRuleList(rules))
}

// Create POST /api/v1/schedule-rules
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /schedule-rules - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.create.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createRule.ErrInvalidRange):
			h.logger.Warn("POST /schedule-rules - Invalid range: activity_id=%s, error=%v", req.ActivityID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, createRule.ErrInvalidPattern):
			h.logger.Warn("POST /schedule-rules - Invalid pattern: activity_id=%s, pattern=%s", req.ActivityID, req.Pattern)
			handlers.RespondBadRequest(w, msgInvalidPattern)

		case errors.Is(err, createRule.ErrInvalidInput):
			h.logger.Warn("POST /schedule-rules - Invalid data: activity_id=%s, error=%v", req.ActivityID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, createRule.ErrActivityNotFound):
			h.logger.Warn("POST /schedule-rules - Activity not found: activity_id=%s", req.ActivityID)
			handlers.RespondNotFound(w, msgActivityNotFound)

		case errors.Is(err, createRule.ErrStaffNotQualified):
			h.logger.Warn("POST /schedule-rules - Staff not qualified: activity_id=%s, staff=%v", req.ActivityID, req.StaffIDs)
			handlers.RespondBadRequest(w, msgStaffNotQualified)

		case errors.Is(err, createRule.ErrRuleOverlap):
			h.logger.Warn("POST /schedule-rules - Rule overlap: activity_id=%s", req.ActivityID)
			handlers.RespondConflict(w, msgRuleOverlap, "")

		default:
			h.logger.Error("POST /schedule-rules - Failed to create rule: activity_id=%s, error=%v", req.ActivityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule-rules - Rule created successfully: rule_id=%s, activity_id=%s, slots_per_day=%d",
		result.Rule.ID, result.Rule.ActivityID, result.SlotsPerDay)
	handlers.RespondJSON(w, http.StatusCreated, CreateRuleResponse{
		RuleResponse: FromDomainRule(result.Rule),
		SlotsPerDay:  result.SlotsPerDay,
	})
}

// Generate POST /api/v1/schedule-rules/bulk
// Создает по правилу на каждую активность, у которой есть допущенные сотрудники.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule-rules/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /schedule-rules/bulk - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.generate.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateRules.ErrInvalidRange):
			h.logger.Warn("POST /schedule-rules/bulk - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, generateRules.ErrInvalidDuration):
			h.logger.Warn("POST /schedule-rules/bulk - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, generateRules.ErrInvalidInput), errors.Is(err, createRule.ErrInvalidPattern):
			h.logger.Warn("POST /schedule-rules/bulk - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPattern)

		default:
			h.logger.Error("POST /schedule-rules/bulk - Failed to generate rules: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule-rules/bulk - Rules generated: created=%d, skipped=%d, end_date=%s",
		len(result.Created), len(result.Skipped), result.EndDate)
	handlers.RespondJSON(w, http.StatusCreated, FromGenerateResponse(result))
}

// Delete DELETE /api/v1/schedule-rules/{ruleId}
// Слоты правила исчезают вместе с ним, оформленные бронирования сохраняются.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ruleID := mux.Vars(r)["ruleId"]

	if err := h.engine.DeleteRule(r.Context(), ruleID); err != nil {
		if errors.Is(err, slots.ErrRuleNotFound) {
			h.logger.Warn("DELETE /schedule-rules/{id} - Rule not found: rule_id=%s", ruleID)
			handlers.RespondNotFound(w, msgRuleNotFound)
			return
		}
		h.logger.Error("DELETE /schedule-rules/{id} - Failed to delete rule: rule_id=%s, error=%v", ruleID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /schedule-rules/{id} - Rule deleted successfully: rule_id=%s", ruleID)
	handlers.RespondNoContent(w)
}
