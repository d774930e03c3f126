package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	activityRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/activity"
	categoryRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/category"
	staffRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/staff"
	ticketRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/ticket"
	"github.com/m04kA/RiverRun-BookingService/internal/service/catalog/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type memActivities struct {
	items map[string]*domain.Activity
	inUse map[string]bool
}

func (m *memActivities) Create(_ context.Context, a *domain.Activity) (*domain.Activity, error) {
	m.items[a.ID] = a
	return a, nil
}

func (m *memActivities) Update(_ context.Context, a *domain.Activity) (*domain.Activity, error) {
	if _, ok := m.items[a.ID]; !ok {
		return nil, activityRepo.ErrActivityNotFound
	}
	m.items[a.ID] = a
	return a, nil
}

func (m *memActivities) GetByID(_ context.Context, id string) (*domain.Activity, error) {
	if a, ok := m.items[id]; ok {
		return a, nil
	}
	return nil, activityRepo.ErrActivityNotFound
}

func (m *memActivities) List(_ context.Context, categoryID *string) ([]*domain.Activity, error) {
	var out []*domain.Activity
	for _, a := range m.items {
		if categoryID == nil || a.CategoryID == *categoryID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memActivities) Delete(_ context.Context, id string) error {
	if m.inUse[id] {
		return activityRepo.ErrActivityInUse
	}
	if _, ok := m.items[id]; !ok {
		return activityRepo.ErrActivityNotFound
	}
	delete(m.items, id)
	return nil
}

type memCategories map[string]*domain.ActivityCategory

func (m memCategories) Create(_ context.Context, c *domain.ActivityCategory) (*domain.ActivityCategory, error) {
	m[c.ID] = c
	return c, nil
}

func (m memCategories) GetByID(_ context.Context, id string) (*domain.ActivityCategory, error) {
	if c, ok := m[id]; ok {
		return c, nil
	}
	return nil, categoryRepo.ErrCategoryNotFound
}

func (m memCategories) List(context.Context) ([]*domain.ActivityCategory, error) {
	out := make([]*domain.ActivityCategory, 0, len(m))
	for _, c := range m {
		out = append(out, c)
	}
	return out, nil
}

func (m memCategories) Delete(_ context.Context, id string) error {
	if _, ok := m[id]; !ok {
		return categoryRepo.ErrCategoryNotFound
	}
	delete(m, id)
	return nil
}

type memStaff map[string]*domain.Staff

func (m memStaff) Create(_ context.Context, s *domain.Staff) (*domain.Staff, error) {
	m[s.ID] = s
	return s, nil
}

func (m memStaff) Update(_ context.Context, s *domain.Staff) (*domain.Staff, error) {
	if _, ok := m[s.ID]; !ok {
		return nil, staffRepo.ErrStaffNotFound
	}
	m[s.ID] = s
	return s, nil
}

func (m memStaff) GetByID(_ context.Context, id string) (*domain.Staff, error) {
	if s, ok := m[id]; ok {
		return s, nil
	}
	return nil, staffRepo.ErrStaffNotFound
}

func (m memStaff) List(context.Context) ([]*domain.Staff, error) {
	out := make([]*domain.Staff, 0, len(m))
	for _, s := range m {
		out = append(out, s)
	}
	return out, nil
}

func (m memStaff) Delete(_ context.Context, id string) error {
	if _, ok := m[id]; !ok {
		return staffRepo.ErrStaffNotFound
	}
	delete(m, id)
	return nil
}

type memTickets map[string]*domain.Ticket

func (m memTickets) Create(_ context.Context, t *domain.Ticket) (*domain.Ticket, error) {
	m[t.ID] = t
	return t, nil
}

func (m memTickets) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	if t, ok := m[id]; ok {
		return t, nil
	}
	return nil, ticketRepo.ErrTicketNotFound
}

func (m memTickets) List(context.Context) ([]*domain.Ticket, error) {
	out := make([]*domain.Ticket, 0, len(m))
	for _, t := range m {
		out = append(out, t)
	}
	return out, nil
}

func (m memTickets) Delete(_ context.Context, id string) error {
	if _, ok := m[id]; !ok {
		return ticketRepo.ErrTicketNotFound
	}
	delete(m, id)
	return nil
}

func newCatalog() (*Service, *memActivities) {
	activities := &memActivities{items: map[string]*domain.Activity{}, inUse: map[string]bool{}}
	svc := NewService(
		activities,
		memCategories{"c1": {ID: "c1", Name: "Water"}},
		memStaff{"s1": {ID: "s1", Name: "Ravi"}, "s2": {ID: "s2", Name: "Meera"}},
		memTickets{},
		nopLogger{},
	)
	return svc, activities
}

func validActivity() *models.ActivityRequest {
	return &models.ActivityRequest{
		CategoryID:       "c1",
		Title:            "  Kayaking ",
		Price:            30.5,
		DurationMinutes:  60,
		CapacityPerSlot:  6,
		AssignedStaffIDs: []string{"s1", "s1", "s2"},
	}
}

func TestCreateActivity(t *testing.T) {
	svc, _ := newCatalog()

	resp, err := svc.CreateActivity(context.Background(), validActivity())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Kayaking", resp.Title)
	assert.Equal(t, 30.5, resp.Price)
	assert.Equal(t, []string{"s1", "s2"}, resp.AssignedStaffIDs)
}

func TestCreateActivity_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.ActivityRequest)
		wantErr error
	}{
		{"empty title", func(r *models.ActivityRequest) { r.Title = " " }, ErrInvalidInput},
		{"negative price", func(r *models.ActivityRequest) { r.Price = -1 }, ErrInvalidInput},
		{"zero duration", func(r *models.ActivityRequest) { r.DurationMinutes = 0 }, ErrInvalidInput},
		{"huge capacity", func(r *models.ActivityRequest) { r.CapacityPerSlot = domain.MaxCapacity + 1 }, ErrInvalidInput},
		{"unknown category", func(r *models.ActivityRequest) { r.CategoryID = "c9" }, ErrCategoryNotFound},
		{"unknown staff", func(r *models.ActivityRequest) { r.AssignedStaffIDs = []string{"s9"} }, ErrStaffNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, activities := newCatalog()
			req := validActivity()
			tt.mutate(req)

			_, err := svc.CreateActivity(context.Background(), req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, activities.items)
		})
	}
}

func TestUpdateAndDeleteActivity(t *testing.T) {
	svc, activities := newCatalog()

	created, err := svc.CreateActivity(context.Background(), validActivity())
	require.NoError(t, err)

	req := validActivity()
	req.Price = 45
	updated, err := svc.UpdateActivity(context.Background(), created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 45.0, updated.Price)

	_, err = svc.UpdateActivity(context.Background(), "missing", validActivity())
	require.ErrorIs(t, err, ErrActivityNotFound)

	activities.inUse[created.ID] = true
	require.ErrorIs(t, svc.DeleteActivity(context.Background(), created.ID), ErrInUse)

	activities.inUse[created.ID] = false
	require.NoError(t, svc.DeleteActivity(context.Background(), created.ID))
	require.ErrorIs(t, svc.DeleteActivity(context.Background(), created.ID), ErrActivityNotFound)
}

func TestCreateStaff_Schedule(t *testing.T) {
	svc, _ := newCatalog()

	resp, err := svc.CreateStaff(context.Background(), &models.StaffRequest{
		Name: "Arjun",
		Schedule: domain.WeeklySchedule{
			"monday": {Start: "09:00", End: "17:00", Active: true},
			"Sunday": {Active: false},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Schedule, "Monday")
	assert.Contains(t, resp.Schedule, "Sunday")

	_, err = svc.CreateStaff(context.Background(), &models.StaffRequest{
		Name:     "Arjun",
		Schedule: domain.WeeklySchedule{"Monday": {Start: "17:00", End: "09:00", Active: true}},
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateStaff(context.Background(), &models.StaffRequest{
		Name:     "Arjun",
		Schedule: domain.WeeklySchedule{"Funday": {}},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestTickets(t *testing.T) {
	svc, _ := newCatalog()

	created, err := svc.CreateTicket(context.Background(), &models.TicketRequest{Title: "Child Entry", Price: 25, Category: "child"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.TicketChild), created.Category)

	_, err = svc.CreateTicket(context.Background(), &models.TicketRequest{Title: "Pet Entry", Price: 5, Category: "PET"})
	require.ErrorIs(t, err, ErrInvalidInput)

	list, err := svc.ListTickets(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteTicket(context.Background(), created.ID))
	require.ErrorIs(t, svc.DeleteTicket(context.Background(), created.ID), ErrTicketNotFound)
}

func TestCategories(t *testing.T) {
	svc, _ := newCatalog()

	_, err := svc.CreateCategory(context.Background(), &models.CategoryRequest{Name: ""})
	require.ErrorIs(t, err, ErrInvalidInput)

	created, err := svc.CreateCategory(context.Background(), &models.CategoryRequest{Name: "Land"})
	require.NoError(t, err)

	list, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.DeleteCategory(context.Background(), created.ID))
}
