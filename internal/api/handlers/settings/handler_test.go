package settings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RiverRun-BookingService/internal/service/settings"
	"github.com/m04kA/RiverRun-BookingService/internal/service/settings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	tax float64
}

func (s *stubService) Get(context.Context) (*models.SettingsResponse, error) {
	return &models.SettingsResponse{TaxPercentage: s.tax}, nil
}

func (s *stubService) Update(_ context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	if req.TaxPercentage == nil || *req.TaxPercentage < 0 || *req.TaxPercentage > 100 {
		return nil, settings.ErrInvalidInput
	}
	s.tax = *req.TaxPercentage
	return &models.SettingsResponse{TaxPercentage: s.tax}, nil
}

func TestSettings(t *testing.T) {
	svc := &stubService{tax: 5}
	h := NewHandler(svc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.SettingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 5.0, got.TaxPercentage)

	rec = httptest.NewRecorder()
	h.Update(rec, httptest.NewRequest(http.MethodPut, "/api/v1/settings", strings.NewReader(`{"taxPercentage":18}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 18.0, svc.tax)

	rec = httptest.NewRecorder()
	h.Update(rec, httptest.NewRequest(http.MethodPut, "/api/v1/settings", strings.NewReader(`{"taxPercentage":180}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
