package coupons

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	couponRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/coupon"
	"github.com/m04kA/RiverRun-BookingService/internal/service/coupons/models"
)

// Service сервис промокодов
type Service struct {
	couponRepo CouponRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса промокодов
func NewService(couponRepo CouponRepository, logger Logger) *Service {
	return &Service{
		couponRepo: couponRepo,
		logger:     logger,
	}
}

// List возвращает все купоны
func (s *Service) List(ctx context.Context) ([]models.CouponResponse, error) {
	coupons, err := s.couponRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	result := make([]models.CouponResponse, 0, len(coupons))
	for _, c := range coupons {
		result = append(result, models.FromDomainCoupon(c))
	}
	return result, nil
}

// GetByCode ищет купон по коду без учёта регистра
func (s *Service) GetByCode(ctx context.Context, code string) (*models.CouponResponse, error) {
	normalized := domain.NormalizeCouponCode(code)
	if normalized == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	coupon, err := s.couponRepo.GetByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			s.logger.Warn("GetByCode: coupon %s not found", normalized)
			return nil, ErrCouponNotFound
		}
		s.logger.Error("GetByCode: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %w", ErrInternal, err)
	}

	resp := models.FromDomainCoupon(coupon)
	return &resp, nil
}

// Create создает купон
func (s *Service) Create(ctx context.Context, req *models.CreateCouponRequest) (*models.CouponResponse, error) {
	s.logger.Info("Create: code=%s, type=%s, value=%v", req.Code, req.DiscountType, req.Value)

	// 1. Валидация входных данных
	coupon, err := couponFromRequest(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Сохраняем
	created, err := s.couponRepo.Create(ctx, coupon)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCodeTaken) {
			s.logger.Warn("Create: code %s already exists", coupon.Code)
			return nil, ErrCodeTaken
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created coupon id=%s", created.ID)
	resp := models.FromDomainCoupon(created)
	return &resp, nil
}

// SetActive включает или отключает купон
func (s *Service) SetActive(ctx context.Context, id string, req *models.SetActiveRequest) error {
	if req.IsActive == nil {
		return fmt.Errorf("%w: isActive is required", ErrInvalidInput)
	}

	if err := s.couponRepo.SetActive(ctx, id, *req.IsActive); err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			return ErrCouponNotFound
		}
		s.logger.Error("SetActive: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: SetActive - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("SetActive: coupon id=%s active=%t", id, *req.IsActive)
	return nil
}

// Delete удаляет купон. Заказы хранят код как строку.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.couponRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			return ErrCouponNotFound
		}
		s.logger.Error("Delete: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted coupon id=%s", id)
	return nil
}

// couponFromRequest валидирует запрос и строит domain модель
func couponFromRequest(req *models.CreateCouponRequest) (*domain.Coupon, error) {
	code := domain.NormalizeCouponCode(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	discountType := domain.DiscountType(domain.NormalizeCouponCode(req.DiscountType))
	if !discountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown discount type %q", ErrInvalidInput, req.DiscountType)
	}

	value := decimal.NewFromFloat(req.Value).Round(2)
	if !value.IsPositive() {
		return nil, fmt.Errorf("%w: value must be positive", ErrInvalidInput)
	}
	if discountType == domain.DiscountPercent && value.GreaterThan(decimal.NewFromInt(domain.MaxPercentDiscount)) {
		return nil, fmt.Errorf("%w: percent discount must not exceed %d", ErrInvalidInput, domain.MaxPercentDiscount)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	return &domain.Coupon{
		ID:           uuid.NewString(),
		Code:         code,
		DiscountType: discountType,
		Value:        value,
		IsActive:     active,
	}, nil
}
