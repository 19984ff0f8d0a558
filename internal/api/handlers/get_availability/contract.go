package get_availability

import (
	"context"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	getAvailability "github.com/m04kA/SMC-HotelService/internal/usecase/get_availability"
)

type GetAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error)
}

type SettingsProvider interface {
	Current(ctx context.Context) (*domain.HotelSettings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
