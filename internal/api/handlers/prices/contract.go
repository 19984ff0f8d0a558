package prices

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/service/pricing"
)

type PriceService interface {
	ResolveForDate(ctx context.Context, roomTypeID int64, mode domain.RentalMode, date time.Time) (*domain.ResolvedPrice, error)
	Calendar(ctx context.Context, roomTypeID int64, mode domain.RentalMode, from, to time.Time) (*pricing.Calendar, error)
}

type SettingsProvider interface {
	Current(ctx context.Context) (*domain.HotelSettings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
