package adjust_checkout

import (
	"context"

	adjustCheckOut "github.com/m04kA/SMC-HotelService/internal/usecase/adjust_checkout"
)

type AdjustCheckOutUseCase interface {
	Execute(ctx context.Context, req *adjustCheckOut.Request) (*adjustCheckOut.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
