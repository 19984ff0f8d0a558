package holds

import (
	"context"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/service/holds"
)

type HoldService interface {
	Create(ctx context.Context, req *holds.CreateHoldRequest) (*domain.ProvisionalHold, error)
	Release(ctx context.Context, holdID int64) (*domain.ProvisionalHold, error)
}

type SettingsProvider interface {
	Current(ctx context.Context) (*domain.HotelSettings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
