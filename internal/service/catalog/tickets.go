package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	ticketRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/ticket"
	"github.com/m04kA/RiverRun-BookingService/internal/service/catalog/models"
)

// ListTickets возвращает все билеты
func (s *Service) ListTickets(ctx context.Context) ([]models.TicketResponse, error) {
	tickets, err := s.ticketRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListTickets: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListTickets - repository error: %w", ErrInternal, err)
	}

	result := make([]models.TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		result = append(result, models.FromDomainTicket(t))
	}
	return result, nil
}

// CreateTicket создает билет
func (s *Service) CreateTicket(ctx context.Context, req *models.TicketRequest) (*models.TicketResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	category := domain.TicketCategory(strings.ToUpper(req.Category))
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.Category)
	}

	created, err := s.ticketRepo.Create(ctx, &domain.Ticket{
		ID:          uuid.NewString(),
		Title:       title,
		Description: req.Description,
		Price:       decimal.NewFromFloat(req.Price).Round(2),
		Category:    category,
	})
	if err != nil {
		s.logger.Error("CreateTicket: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateTicket - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateTicket: successfully created ticket id=%s", created.ID)
	resp := models.FromDomainTicket(created)
	return &resp, nil
}

// DeleteTicket удаляет билет. Оформленные заказы сохраняют название и цену.
func (s *Service) DeleteTicket(ctx context.Context, id string) error {
	if err := s.ticketRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, ticketRepo.ErrTicketNotFound) {
			return ErrTicketNotFound
		}
		s.logger.Error("DeleteTicket: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: DeleteTicket - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("DeleteTicket: deleted ticket id=%s", id)
	return nil
}
