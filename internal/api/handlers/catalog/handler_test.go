package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RiverRun-BookingService/internal/service/catalog"
	"github.com/m04kA/RiverRun-BookingService/internal/service/catalog/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// stubService переопределяет только нужные тестам методы
type stubService struct {
	CatalogService

	activities map[string]models.ActivityResponse
	createErr  error
	deleteErr  error
	gotFilter  *string
}

func (s *stubService) ListActivities(_ context.Context, categoryID *string) ([]models.ActivityResponse, error) {
	s.gotFilter = categoryID
	out := make([]models.ActivityResponse, 0, len(s.activities))
	for _, a := range s.activities {
		out = append(out, a)
	}
	return out, nil
}

func (s *stubService) GetActivity(_ context.Context, id string) (*models.ActivityResponse, error) {
	a, ok := s.activities[id]
	if !ok {
		return nil, catalog.ErrActivityNotFound
	}
	return &a, nil
}

func (s *stubService) CreateActivity(_ context.Context, req *models.ActivityRequest) (*models.ActivityResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.ActivityResponse{ID: "a2", Title: req.Title, Price: req.Price}, nil
}

func (s *stubService) DeleteActivity(_ context.Context, _ string) error {
	return s.deleteErr
}

func newRouter(svc CatalogService) *mux.Router {
	h := NewHandler(svc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/activities", h.ListActivities).Methods(http.MethodGet)
	r.HandleFunc("/activities", h.CreateActivity).Methods(http.MethodPost)
	r.HandleFunc("/activities/{activityId}", h.GetActivity).Methods(http.MethodGet)
	r.HandleFunc("/activities/{activityId}", h.DeleteActivity).Methods(http.MethodDelete)
	return r
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestActivities(t *testing.T) {
	svc := &stubService{activities: map[string]models.ActivityResponse{"a1": {ID: "a1", Title: "Kayaking"}}}
	r := newRouter(svc)

	rec := serve(r, http.MethodGet, "/activities?categoryId=c1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotFilter)
	assert.Equal(t, "c1", *svc.gotFilter)

	rec = serve(r, http.MethodGet, "/activities/a1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.ActivityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Kayaking", got.Title)

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/activities/a9", "").Code)

	rec = serve(r, http.MethodPost, "/activities", `{"categoryId":"c1","title":"Zipline","price":45,"durationMinutes":30,"capacityPerSlot":4}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPost, "/activities", `{"title":`).Code)
}

func TestActivities_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		createErr  error
		wantStatus int
	}{
		{"invalid", catalog.ErrInvalidInput, http.StatusBadRequest},
		{"category", catalog.ErrCategoryNotFound, http.StatusNotFound},
		{"staff", catalog.ErrStaffNotFound, http.StatusNotFound},
		{"internal", catalog.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(&stubService{createErr: tt.createErr})
			rec := serve(r, http.MethodPost, "/activities", `{"title":"Zipline"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestDeleteActivity_InUse(t *testing.T) {
	r := newRouter(&stubService{deleteErr: catalog.ErrInUse})
	assert.Equal(t, http.StatusConflict, serve(r, http.MethodDelete, "/activities/a1", "").Code)

	r = newRouter(&stubService{})
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodDelete, "/activities/a1", "").Code)
}
