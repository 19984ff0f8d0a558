package apply_early_checkin_fee

import (
	"context"

	earlyFee "github.com/m04kA/SMC-HotelService/internal/usecase/apply_early_checkin_fee"
)

type EarlyCheckInFeeUseCase interface {
	Execute(ctx context.Context, req *earlyFee.Request) (*earlyFee.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
