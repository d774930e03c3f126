package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	settingsRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/settings"
	"github.com/m04kA/RiverRun-BookingService/internal/service/settings/models"
)

var maxTaxPercentage = decimal.NewFromInt(100)

// Service сервис глобальных настроек магазина
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get возвращает настройки. Если они ещё не сохранялись, действует ставка налога по умолчанию.
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Info("Get: settings not saved yet, using defaults")
			return models.FromDomainSettings(&domain.SystemSettings{TaxPercentage: domain.DefaultTaxPercentage}), nil
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// Update сохраняет ставку налога
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	if req.TaxPercentage == nil {
		return nil, fmt.Errorf("%w: taxPercentage is required", ErrInvalidInput)
	}

	tax := decimal.NewFromFloat(*req.TaxPercentage).Round(2)
	if tax.IsNegative() || tax.GreaterThan(maxTaxPercentage) {
		s.logger.Warn("Update: tax percentage %s out of range", tax)
		return nil, fmt.Errorf("%w: taxPercentage must be between 0 and 100", ErrInvalidInput)
	}

	s.logger.Info("Update: setting tax percentage=%s", tax)

	saved, err := s.settingsRepo.Upsert(ctx, &domain.SystemSettings{TaxPercentage: tax})
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainSettings(saved), nil
}
