package booking_lifecycle

import (
	"context"

	"github.com/m04kA/SMC-HotelService/internal/service/lifecycle"
)

type LifecycleService interface {
	Confirm(ctx context.Context, bookingID int64) (*lifecycle.Result, error)
	CheckIn(ctx context.Context, req *lifecycle.CheckInRequest) (*lifecycle.Result, error)
	CheckOut(ctx context.Context, bookingID int64) (*lifecycle.Result, error)
	Cancel(ctx context.Context, req *lifecycle.CancelRequest) (*lifecycle.Result, error)
	NoShow(ctx context.Context, bookingID int64) (*lifecycle.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
