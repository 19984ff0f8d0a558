package settings

import (
	"context"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/service/settings/models"
)

type SettingsService interface {
	Current(ctx context.Context) (*domain.HotelSettings, error)
	Update(ctx context.Context, req *models.UpdateSettingsRequest) (*domain.HotelSettings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
