package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	settingsRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/settings"
	"github.com/m04kA/RiverRun-BookingService/internal/service/settings/models"
	"github.com/m04kA/RiverRun-BookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type memoryRepo struct {
	saved *domain.SystemSettings
	err   error
}

func (m *memoryRepo) Get(context.Context) (*domain.SystemSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.saved == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return m.saved, nil
}

func (m *memoryRepo) Upsert(_ context.Context, s *domain.SystemSettings) (*domain.SystemSettings, error) {
	s.UpdatedAt = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	m.saved = s
	return s, nil
}

func TestGet_DefaultsWhenNotSaved(t *testing.T) {
	svc := NewService(&memoryRepo{}, nopLogger{})

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5.0, resp.TaxPercentage)
	assert.Nil(t, resp.UpdatedAt)
}

func TestUpdate(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{TaxPercentage: ptr.Ptr(12.5)})
	require.NoError(t, err)
	assert.Equal(t, 12.5, resp.TaxPercentage)
	assert.True(t, repo.saved.TaxPercentage.Equal(decimal.RequireFromString("12.5")))

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12.5, got.TaxPercentage)
	assert.NotNil(t, got.UpdatedAt)

	for _, bad := range []*float64{nil, ptr.Ptr(-1.0), ptr.Ptr(100.5)} {
		_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{TaxPercentage: bad})
		require.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestGet_RepositoryError(t *testing.T) {
	svc := NewService(&memoryRepo{err: errors.New("conn reset")}, nopLogger{})

	_, err := svc.Get(context.Background())
	require.ErrorIs(t, err, ErrInternal)
}
