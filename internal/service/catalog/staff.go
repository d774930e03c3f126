package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	staffRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/staff"
	"github.com/m04kA/RiverRun-BookingService/internal/service/catalog/models"
	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

// ListStaff возвращает всех сотрудников
func (s *Service) ListStaff(ctx context.Context) ([]models.StaffResponse, error) {
	staff, err := s.staffRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListStaff: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListStaff - repository error: %w", ErrInternal, err)
	}

	result := make([]models.StaffResponse, 0, len(staff))
	for _, st := range staff {
		result = append(result, models.FromDomainStaff(st))
	}
	return result, nil
}

// CreateStaff создает сотрудника
func (s *Service) CreateStaff(ctx context.Context, req *models.StaffRequest) (*models.StaffResponse, error) {
	staff, err := staffFromRequest(uuid.NewString(), req)
	if err != nil {
		s.logger.Warn("CreateStaff: validation failed: %v", err)
		return nil, err
	}

	created, err := s.staffRepo.Create(ctx, staff)
	if err != nil {
		s.logger.Error("CreateStaff: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateStaff - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateStaff: successfully created staff id=%s", created.ID)
	resp := models.FromDomainStaff(created)
	return &resp, nil
}

// UpdateStaff заменяет данные сотрудника
func (s *Service) UpdateStaff(ctx context.Context, id string, req *models.StaffRequest) (*models.StaffResponse, error) {
	staff, err := staffFromRequest(id, req)
	if err != nil {
		s.logger.Warn("UpdateStaff: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.staffRepo.Update(ctx, staff)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("UpdateStaff: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStaff - repository error: %w", ErrInternal, err)
	}

	resp := models.FromDomainStaff(updated)
	return &resp, nil
}

// DeleteStaff удаляет сотрудника
func (s *Service) DeleteStaff(ctx context.Context, id string) error {
	if err := s.staffRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			return ErrStaffNotFound
		}
		s.logger.Error("DeleteStaff: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: DeleteStaff - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("DeleteStaff: deleted staff id=%s", id)
	return nil
}

// staffFromRequest валидирует запрос и строит domain модель
func staffFromRequest(id string, req *models.StaffRequest) (*domain.Staff, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	schedule := domain.WeeklySchedule{}
	for day, hours := range req.Schedule {
		weekday, ok := domain.ParseWeekday(day)
		if !ok {
			return nil, fmt.Errorf("%w: unknown day %q", ErrInvalidInput, day)
		}
		if hours.Active {
			start, err := types.NewTimeStringFromString(hours.Start)
			if err != nil {
				return nil, fmt.Errorf("%w: %s start: %v", ErrInvalidInput, day, err)
			}
			end, err := types.NewTimeStringFromString(hours.End)
			if err != nil {
				return nil, fmt.Errorf("%w: %s end: %v", ErrInvalidInput, day, err)
			}
			if !start.IsBefore(end) {
				return nil, fmt.Errorf("%w: %s start must be before end", ErrInvalidInput, day)
			}
		}
		schedule[weekday.String()] = hours
	}

	return &domain.Staff{
		ID:       id,
		Name:     name,
		Role:     strings.TrimSpace(req.Role),
		Schedule: schedule,
	}, nil
}
