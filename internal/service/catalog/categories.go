package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	categoryRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/category"
	"github.com/m04kA/RiverRun-BookingService/internal/service/catalog/models"
)

// ListCategories возвращает все категории
func (s *Service) ListCategories(ctx context.Context) ([]models.CategoryResponse, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListCategories: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCategories - repository error: %w", ErrInternal, err)
	}

	result := make([]models.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		result = append(result, models.FromDomainCategory(c))
	}
	return result, nil
}

// CreateCategory создает категорию
func (s *Service) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	created, err := s.categoryRepo.Create(ctx, &domain.ActivityCategory{
		ID:          uuid.NewString(),
		Name:        name,
		Description: req.Description,
	})
	if err != nil {
		s.logger.Error("CreateCategory: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateCategory - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateCategory: successfully created category id=%s", created.ID)
	resp := models.FromDomainCategory(created)
	return &resp, nil
}

// DeleteCategory удаляет пустую категорию
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, categoryRepo.ErrCategoryNotFound):
			return ErrCategoryNotFound
		case errors.Is(err, categoryRepo.ErrCategoryInUse):
			return fmt.Errorf("%w: category has activities", ErrInUse)
		}
		s.logger.Error("DeleteCategory: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: DeleteCategory - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("DeleteCategory: deleted category id=%s", id)
	return nil
}
