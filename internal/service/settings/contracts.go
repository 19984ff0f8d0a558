package settings

import (
	"context"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек отеля
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.HotelSettings, error)
	Upsert(ctx context.Context, s *domain.HotelSettings) error
}

// ServiceCatalog каталог услуг (проверка услуги раннего заезда)
type ServiceCatalog interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
