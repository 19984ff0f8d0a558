package reprice_booking

import (
	"context"

	repriceBooking "github.com/m04kA/SMC-HotelService/internal/usecase/reprice_booking"
)

type RepriceBookingUseCase interface {
	Execute(ctx context.Context, bookingID int64) (*repriceBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
