package activity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	"github.com/m04kA/RiverRun-BookingService/pkg/dbmetrics"
	"github.com/m04kA/RiverRun-BookingService/pkg/psqlbuilder"
)

// SQLSTATE foreign_key_violation
const codeForeignKeyViolation = "23503"

var activityColumns = []string{
	"id",
	"category_id",
	"title",
	"description",
	"price",
	"duration_minutes",
	"capacity_per_slot",
	"color",
	"assigned_staff_ids",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога активностей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория активностей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую активность
func (r *Repository) Create(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("activities").
		Columns(
			"id",
			"category_id",
			"title",
			"description",
			"price",
			"duration_minutes",
			"capacity_per_slot",
			"color",
			"assigned_staff_ids",
		).
		Values(
			activity.ID,
			activity.CategoryID,
			activity.Title,
			activity.Description,
			activity.Price,
			activity.DurationMinutes,
			activity.CapacityPerSlot,
			activity.Color,
			pq.Array(activity.AssignedStaffIDs),
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	activity.CreatedAt = createdAt.Time
	activity.UpdatedAt = updatedAt.Time

	return activity, nil
}

// Update перезаписывает поля активности
func (r *Repository) Update(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("activities").
		Set("category_id", activity.CategoryID).
		Set("title", activity.Title).
		Set("description", activity.Description).
		Set("price", activity.Price).
		Set("duration_minutes", activity.DurationMinutes).
		Set("capacity_per_slot", activity.CapacityPerSlot).
		Set("color", activity.Color).
		Set("assigned_staff_ids", pq.Array(activity.AssignedStaffIDs)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": activity.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	activity.CreatedAt = createdAt.Time
	activity.UpdatedAt = updatedAt.Time

	return activity, nil
}

// GetByID получает активность по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(activityColumns...).
		From("activities").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	activity, err := scanActivity(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan activity: %w", ErrScanRow, err)
	}

	return activity, nil
}

// GetByIDs получает активности по набору ID. Отсутствующие ID просто пропускаются.
func (r *Repository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Activity, error) {
	result := make(map[string]*domain.Activity, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	activities, err := r.list(ctx, squirrel.Eq{"id": ids})
	if err != nil {
		return nil, err
	}
	for _, a := range activities {
		result[a.ID] = a
	}

	return result, nil
}

// List возвращает все активности, опционально по категории
func (r *Repository) List(ctx context.Context, categoryID *string) ([]*domain.Activity, error) {
	if categoryID != nil {
		return r.list(ctx, squirrel.Eq{"category_id": *categoryID})
	}
	return r.list(ctx, nil)
}

func (r *Repository) list(ctx context.Context, where squirrel.Sqlizer) ([]*domain.Activity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(activityColumns...).
		From("activities").
		OrderBy("title ASC", "id ASC")
	if where != nil {
		selectBuilder = selectBuilder.Where(where)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	activities := make([]*domain.Activity, 0)
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return activities, nil
}

// Delete удаляет активность. Если на неё ссылаются правила или ручные слоты, возвращает ErrActivityInUse.
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("activities").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == codeForeignKeyViolation {
			return ErrActivityInUse
		}
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrActivityNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanActivity(row rowScanner) (*domain.Activity, error) {
	var activity domain.Activity
	var staffIDs pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&activity.ID,
		&activity.CategoryID,
		&activity.Title,
		&activity.Description,
		&activity.Price,
		&activity.DurationMinutes,
		&activity.CapacityPerSlot,
		&activity.Color,
		&staffIDs,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	activity.AssignedStaffIDs = []string(staffIDs)
	activity.CreatedAt = createdAt.Time
	activity.UpdatedAt = updatedAt.Time

	return &activity, nil
}
