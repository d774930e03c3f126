package catalog

import (
	"context"

	"github.com/m04kA/RiverRun-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	ListActivities(ctx context.Context, categoryID *string) ([]models.ActivityResponse, error)
	GetActivity(ctx context.Context, id string) (*models.ActivityResponse, error)
	CreateActivity(ctx context.Context, req *models.ActivityRequest) (*models.ActivityResponse, error)
	UpdateActivity(ctx context.Context, id string, req *models.ActivityRequest) (*models.ActivityResponse, error)
	DeleteActivity(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]models.CategoryResponse, error)
	CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id string) error

	ListStaff(ctx context.Context) ([]models.StaffResponse, error)
	CreateStaff(ctx context.Context, req *models.StaffRequest) (*models.StaffResponse, error)
	UpdateStaff(ctx context.Context, id string, req *models.StaffRequest) (*models.StaffResponse, error)
	DeleteStaff(ctx context.Context, id string) error

	ListTickets(ctx context.Context) ([]models.TicketResponse, error)
	CreateTicket(ctx context.Context, req *models.TicketRequest) (*models.TicketResponse, error)
	DeleteTicket(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
