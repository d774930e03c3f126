package slot

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
	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

// bookedCount в таблице не хранится, он всегда считается по бронированиям
var slotColumns = []string{
	"s.id",
	"s.activity_id",
	"COALESCE(a.title, '')",
	"s.staff_ids",
	"s.slot_date",
	"s.start_time",
	"s.end_time",
	"s.price",
	"s.capacity",
	"s.created_at",
}

// Repository репозиторий ручных слотов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет ручной слот
func (r *Repository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	staffIDs := slot.StaffIDs
	if staffIDs == nil {
		staffIDs = []string{}
	}

	query, args, err := psqlbuilder.Insert("activity_slots").
		Columns("id", "activity_id", "staff_ids", "slot_date", "start_time", "end_time", "price", "capacity").
		Values(
			slot.ID,
			slot.ActivityID,
			pq.Array(staffIDs),
			slot.Date,
			slot.StartTime,
			slot.EndTime,
			slot.Price,
			slot.Capacity,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	slot.CreatedAt = createdAt.Time
	slot.IsGenerated = false

	return slot, nil
}

// GetByID получает ручной слот по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("activity_slots s").
		LeftJoin("activities a ON a.id = s.activity_id").
		Where(squirrel.Eq{"s.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %w", ErrScanRow, err)
	}

	return slot, nil
}

// GetByDate возвращает ручные слоты на дату
func (r *Repository) GetByDate(ctx context.Context, date types.Date) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("activity_slots s").
		LeftJoin("activities a ON a.id = s.activity_id").
		Where(squirrel.Eq{"s.slot_date": date}).
		OrderBy("s.start_time ASC", "s.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDate - scan row: %w", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDate - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

// Delete удаляет ручной слот. Бронирования на него остаются в истории.
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("activity_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var slot domain.Slot
	var staffIDs pq.StringArray
	var createdAt sql.NullTime

	if err := row.Scan(
		&slot.ID,
		&slot.ActivityID,
		&slot.ActivityTitle,
		&staffIDs,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Price,
		&slot.Capacity,
		&createdAt,
	); err != nil {
		return nil, err
	}
	slot.StaffIDs = []string(staffIDs)
	slot.CreatedAt = createdAt.Time

	return &slot, nil
}
