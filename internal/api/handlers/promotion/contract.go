package promotion

import (
	"context"

	"github.com/m04kA/SMC-HotelService/internal/service/promotions"
)

type PromotionService interface {
	Apply(ctx context.Context, bookingID int64, code string) (*promotions.Result, error)
	Remove(ctx context.Context, bookingID int64) (*promotions.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
