package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	"github.com/m04kA/RiverRun-BookingService/pkg/dbmetrics"
	"github.com/m04kA/RiverRun-BookingService/pkg/psqlbuilder"
)

// Настройки хранятся одной строкой с фиксированным id
const settingsRowID = 1

// Repository репозиторий глобальных настроек
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает текущие настройки
func (r *Repository) Get(ctx context.Context) (*domain.SystemSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("tax_percentage", "updated_at").
		From("system_settings").
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %w", ErrBuildQuery, err)
	}

	var settings domain.SystemSettings
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(&settings.TaxPercentage, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %w", ErrScanRow, err)
	}
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// Upsert создаёт или обновляет настройки
func (r *Repository) Upsert(ctx context.Context, settings *domain.SystemSettings) (*domain.SystemSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("system_settings").
		Columns("id", "tax_percentage").
		Values(settingsRowID, settings.TaxPercentage).
		Suffix("ON CONFLICT (id) DO UPDATE SET tax_percentage = EXCLUDED.tax_percentage, updated_at = NOW() RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %w", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}
	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}
