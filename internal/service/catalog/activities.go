package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	activityRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/activity"
	categoryRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/category"
	"github.com/m04kA/RiverRun-BookingService/internal/service/catalog/models"
)

// ListActivities возвращает активности, опционально только одной категории
func (s *Service) ListActivities(ctx context.Context, categoryID *string) ([]models.ActivityResponse, error) {
	activities, err := s.activityRepo.List(ctx, categoryID)
	if err != nil {
		s.logger.Error("ListActivities: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActivities - repository error: %w", ErrInternal, err)
	}

	result := make([]models.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		result = append(result, models.FromDomainActivity(a))
	}
	return result, nil
}

// GetActivity получает активность по ID
func (s *Service) GetActivity(ctx context.Context, id string) (*models.ActivityResponse, error) {
	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			return nil, ErrActivityNotFound
		}
		s.logger.Error("GetActivity: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetActivity - repository error: %w", ErrInternal, err)
	}

	resp := models.FromDomainActivity(activity)
	return &resp, nil
}

// CreateActivity создает активность
func (s *Service) CreateActivity(ctx context.Context, req *models.ActivityRequest) (*models.ActivityResponse, error) {
	s.logger.Info("CreateActivity: title=%q, category=%s", req.Title, req.CategoryID)

	activity := req.ToDomain(uuid.NewString())
	if err := s.validateActivity(ctx, activity); err != nil {
		s.logger.Warn("CreateActivity: validation failed: %v", err)
		return nil, err
	}

	created, err := s.activityRepo.Create(ctx, activity)
	if err != nil {
		s.logger.Error("CreateActivity: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateActivity - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateActivity: successfully created activity id=%s", created.ID)
	resp := models.FromDomainActivity(created)
	return &resp, nil
}

// UpdateActivity заменяет поля активности. Уже сохранённые правила сохраняют свои цену и вместимость.
func (s *Service) UpdateActivity(ctx context.Context, id string, req *models.ActivityRequest) (*models.ActivityResponse, error) {
	s.logger.Info("UpdateActivity: id=%s", id)

	activity := req.ToDomain(id)
	if err := s.validateActivity(ctx, activity); err != nil {
		s.logger.Warn("UpdateActivity: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.activityRepo.Update(ctx, activity)
	if err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			return nil, ErrActivityNotFound
		}
		s.logger.Error("UpdateActivity: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateActivity - repository error: %w", ErrInternal, err)
	}

	resp := models.FromDomainActivity(updated)
	return &resp, nil
}

// DeleteActivity удаляет активность, если на неё не ссылаются правила и слоты
func (s *Service) DeleteActivity(ctx context.Context, id string) error {
	s.logger.Info("DeleteActivity: id=%s", id)

	if err := s.activityRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, activityRepo.ErrActivityNotFound):
			return ErrActivityNotFound
		case errors.Is(err, activityRepo.ErrActivityInUse):
			s.logger.Warn("DeleteActivity: activity id=%s is referenced by schedule", id)
			return fmt.Errorf("%w: activity has schedule rules or slots", ErrInUse)
		}
		s.logger.Error("DeleteActivity: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: DeleteActivity - repository error: %w", ErrInternal, err)
	}

	return nil
}

// validateActivity проверяет поля активности и ссылки на категорию и сотрудников
func (s *Service) validateActivity(ctx context.Context, a *domain.Activity) error {
	// 1. Поля
	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if a.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if a.DurationMinutes < domain.MinDurationMinutes || a.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	if a.CapacityPerSlot < domain.MinCapacity || a.CapacityPerSlot > domain.MaxCapacity {
		return fmt.Errorf("%w: capacityPerSlot must be between %d and %d",
			ErrInvalidInput, domain.MinCapacity, domain.MaxCapacity)
	}

	// 2. Категория
	if _, err := s.categoryRepo.GetByID(ctx, a.CategoryID); err != nil {
		if errors.Is(err, categoryRepo.ErrCategoryNotFound) {
			return fmt.Errorf("%w: category id=%s", ErrCategoryNotFound, a.CategoryID)
		}
		return fmt.Errorf("%w: failed to get category: %w", ErrInternal, err)
	}

	// 3. Сотрудники
	if len(a.AssignedStaffIDs) == 0 {
		return nil
	}
	staff, err := s.staffRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to list staff: %w", ErrInternal, err)
	}
	known := make(map[string]bool, len(staff))
	for _, st := range staff {
		known[st.ID] = true
	}

	seen := make(map[string]bool, len(a.AssignedStaffIDs))
	unique := a.AssignedStaffIDs[:0]
	for _, id := range a.AssignedStaffIDs {
		if !known[id] {
			return fmt.Errorf("%w: staff id=%s", ErrStaffNotFound, id)
		}
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	a.AssignedStaffIDs = unique

	return nil
}
