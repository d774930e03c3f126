package settings

import (
	"context"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.SystemSettings, error)
	Upsert(ctx context.Context, settings *domain.SystemSettings) (*domain.SystemSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
