package service_charges

import (
	"context"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/service/charges"
)

type ChargeService interface {
	Add(ctx context.Context, req *charges.AddChargeRequest) (*charges.Result, error)
	UpdateQuantity(ctx context.Context, key domain.ChargeKey, quantity int) (*charges.Result, error)
	Remove(ctx context.Context, key domain.ChargeKey) (*charges.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
