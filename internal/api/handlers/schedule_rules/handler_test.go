package schedule_rules

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	"github.com/m04kA/RiverRun-BookingService/internal/service/slots"
	createRule "github.com/m04kA/RiverRun-BookingService/internal/usecase/create_schedule_rule"
	generateRules "github.com/m04kA/RiverRun-BookingService/internal/usecase/generate_schedule_rules"
	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) ListRules(ctx context.Context, activityID *string) ([]*domain.ScheduleRule, error) {
	args := m.Called(ctx, activityID)
	rules, _ := args.Get(0).([]*domain.ScheduleRule)
	return rules, args.Error(1)
}

func (m *mockEngine) DeleteRule(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockCreate struct {
	mock.Mock
}

func (m *mockCreate) Execute(ctx context.Context, req *createRule.Request) (*createRule.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*createRule.Response)
	return resp, args.Error(1)
}

type mockGenerate struct {
	mock.Mock
}

func (m *mockGenerate) Execute(ctx context.Context, req *generateRules.Request) (*generateRules.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*generateRules.Response)
	return resp, args.Error(1)
}

func weekdayRule() *domain.ScheduleRule {
	return &domain.ScheduleRule{
		ID:         "r1",
		ActivityID: "a1",
		StaffIDs:   []string{"s1"},
		StartDate:  types.MustParseDate("2024-06-03"),
		EndDate:    types.MustParseDate("2024-06-30"),
		StartTime:  "09:00",
		EndTime:    "11:00",
		Pattern:    domain.PatternWeekdays,
		Price:      decimal.NewFromInt(30),
		Capacity:   6,
	}
}

const createBody = `{"activityId":"a1","staffIds":["s1"],"startDate":"2024-06-03","endDate":"2024-06-30",
"startTime":"09:00","endTime":"11:00","pattern":"weekdays"}`

func TestCreate(t *testing.T) {
	create := &mockCreate{}
	create.On("Execute", mock.Anything, mock.MatchedBy(func(r *createRule.Request) bool {
		return r.Pattern == domain.PatternWeekdays && r.StartTime == "09:00" &&
			r.EndDate.Equal(types.MustParseDate("2024-06-30"))
	})).Return(&createRule.Response{Rule: weekdayRule(), SlotsPerDay: 2}, nil)

	h := NewHandler(&mockEngine{}, create, &mockGenerate{}, nopLogger{})
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/schedule-rules", strings.NewReader(createBody)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body CreateRuleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "r1", body.ID)
	assert.Equal(t, "2024-06-03", body.StartDate)
	assert.Equal(t, 2, body.SlotsPerDay)
}

func TestCreate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"range", createRule.ErrInvalidRange, http.StatusBadRequest},
		{"pattern", createRule.ErrInvalidPattern, http.StatusBadRequest},
		{"activity", createRule.ErrActivityNotFound, http.StatusNotFound},
		{"staff", createRule.ErrStaffNotQualified, http.StatusBadRequest},
		{"overlap", createRule.ErrRuleOverlap, http.StatusConflict},
		{"internal", createRule.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			create := &mockCreate{}
			create.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			h := NewHandler(&mockEngine{}, create, &mockGenerate{}, nopLogger{})
			rec := httptest.NewRecorder()
			h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/schedule-rules", strings.NewReader(createBody)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCreate_BadTime(t *testing.T) {
	create := &mockCreate{}
	h := NewHandler(&mockEngine{}, create, &mockGenerate{}, nopLogger{})
	rec := httptest.NewRecorder()
	body := strings.Replace(createBody, `"09:00"`, `"9am"`, 1)
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/schedule-rules", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	create.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestGenerate(t *testing.T) {
	generate := &mockGenerate{}
	generate.On("Execute", mock.Anything, mock.MatchedBy(func(r *generateRules.Request) bool {
		return r.Duration != nil && r.Duration.Unit == generateRules.UnitMonths && r.Duration.Value == 3 &&
			r.StartTime == nil && r.Pattern == domain.PatternDaily
	})).Return(&generateRules.Response{
		EndDate: types.MustParseDate("2024-09-01"),
		Created: []*domain.ScheduleRule{weekdayRule()},
		Skipped: []generateRules.Skipped{{ActivityID: "a2", Reason: generateRules.ReasonNoQualifiedStaff}},
	}, nil)

	h := NewHandler(&mockEngine{}, &mockCreate{}, generate, nopLogger{})
	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/v1/schedule-rules/bulk",
		strings.NewReader(`{"startDate":"2024-06-01","duration":{"value":3,"unit":"months"},"pattern":"DAILY"}`)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body GenerateRulesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2024-09-01", body.EndDate)
	assert.Len(t, body.Created, 1)
	assert.Equal(t, []SkippedResponse{{ActivityID: "a2", Reason: "NO_QUALIFIED_STAFF"}}, body.Skipped)
}

func TestListAndDelete(t *testing.T) {
	engine := &mockEngine{}
	engine.On("ListRules", mock.Anything, mock.MatchedBy(func(id *string) bool { return id != nil && *id == "a1" })).
		Return([]*domain.ScheduleRule{weekdayRule()}, nil)
	engine.On("DeleteRule", mock.Anything, "r1").Return(nil)
	engine.On("DeleteRule", mock.Anything, "r9").Return(slots.ErrRuleNotFound)
	h := NewHandler(engine, &mockCreate{}, &mockGenerate{}, nopLogger{})

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/schedule-rules?activityId=a1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var rules []RuleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rules))
	assert.Len(t, rules, 1)

	del := func(id string) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/schedule-rules/"+id, nil)
		req = mux.SetURLVars(req, map[string]string{"ruleId": id})
		h.Delete(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusNoContent, del("r1"))
	assert.Equal(t, http.StatusNotFound, del("r9"))
}
