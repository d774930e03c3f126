package rule

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

var ruleColumns = []string{
	"id",
	"activity_id",
	"staff_ids",
	"start_date",
	"end_date",
	"start_time",
	"end_time",
	"pattern",
	"custom_days",
	"price",
	"capacity",
	"created_at",
}

// Repository репозиторий правил расписания
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет правило
func (r *Repository) Create(ctx context.Context, rule *domain.ScheduleRule) (*domain.ScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	customDays := rule.CustomDays
	if customDays == nil {
		customDays = []string{}
	}

	query, args, err := psqlbuilder.Insert("schedule_rules").
		Columns(
			"id",
			"activity_id",
			"staff_ids",
			"start_date",
			"end_date",
			"start_time",
			"end_time",
			"pattern",
			"custom_days",
			"price",
			"capacity",
		).
		Values(
			rule.ID,
			rule.ActivityID,
			pq.Array(rule.StaffIDs),
			rule.StartDate,
			rule.EndDate,
			rule.StartTime,
			rule.EndTime,
			rule.Pattern,
			pq.Array(customDays),
			rule.Price,
			rule.Capacity,
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
	rule.CreatedAt = createdAt.Time

	return rule, nil
}

// GetByID получает правило по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.ScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("schedule_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan rule: %w", ErrScanRow, err)
	}

	return rule, nil
}

// ListActiveOn возвращает правила, диапазон дат которых содержит дату.
// Порядок: сначала более старые, это определяет победителя при совпадении id слотов.
func (r *Repository) ListActiveOn(ctx context.Context, date types.Date) ([]*domain.ScheduleRule, error) {
	return r.list(ctx, "ListActiveOn", squirrel.And{
		squirrel.LtOrEq{"start_date": date},
		squirrel.GtOrEq{"end_date": date},
	})
}

// ListByActivity возвращает все правила активности
func (r *Repository) ListByActivity(ctx context.Context, activityID string) ([]*domain.ScheduleRule, error) {
	return r.list(ctx, "ListByActivity", squirrel.Eq{"activity_id": activityID})
}

// List возвращает все правила
func (r *Repository) List(ctx context.Context) ([]*domain.ScheduleRule, error) {
	return r.list(ctx, "List", nil)
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.ScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(ruleColumns...).
		From("schedule_rules").
		OrderBy("created_at ASC", "id ASC")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	rules := make([]*domain.ScheduleRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return rules, nil
}

// Delete удаляет правило. Сгенерированные им слоты исчезают при следующем чтении,
// существующие бронирования не затрагиваются.
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_rules").
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
		return ErrRuleNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.ScheduleRule, error) {
	var rule domain.ScheduleRule
	var staffIDs, customDays pq.StringArray
	var createdAt sql.NullTime

	if err := row.Scan(
		&rule.ID,
		&rule.ActivityID,
		&staffIDs,
		&rule.StartDate,
		&rule.EndDate,
		&rule.StartTime,
		&rule.EndTime,
		&rule.Pattern,
		&customDays,
		&rule.Price,
		&rule.Capacity,
		&createdAt,
	); err != nil {
		return nil, err
	}
	rule.StaffIDs = []string(staffIDs)
	rule.CustomDays = []string(customDays)
	rule.CreatedAt = createdAt.Time

	return &rule, nil
}

// LockActivity берёт транзакционную advisory-блокировку на правила активности.
// Создание правил одной активности выполняется последовательно.
func (r *Repository) LockActivity(ctx context.Context, activityID string) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNoTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", "schedule_rules:"+activityID); err != nil {
		return fmt.Errorf("%w: LockActivity - activity %s: %w", ErrExecQuery, activityID, err)
	}

	return nil
}
