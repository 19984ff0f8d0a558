package adjust_checkin

import (
	"context"

	adjustCheckIn "github.com/m04kA/SMC-HotelService/internal/usecase/adjust_checkin"
)

type AdjustCheckInUseCase interface {
	Execute(ctx context.Context, req *adjustCheckIn.Request) (*adjustCheckIn.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
