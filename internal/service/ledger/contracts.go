package ledger

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// UsageRepository интерфейс репозитория строк использования
type UsageRepository interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.UsageLine, error)
	Create(ctx context.Context, line *domain.UsageLine) error
	Update(ctx context.Context, line *domain.UsageLine) error
	Rekey(ctx context.Context, from, to domain.LineKey) error
	Delete(ctx context.Context, key domain.LineKey) error
}

// ChargeRepository интерфейс репозитория начислений
type ChargeRepository interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.ServiceCharge, error)
	Update(ctx context.Context, c *domain.ServiceCharge) error
}

// InvoiceRepository интерфейс репозитория счетов
type InvoiceRepository interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.Invoice, error)
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetRoomsByIDs(ctx context.Context, ids []int64) ([]*domain.Room, error)
}

// PriceResolver разрешение цен
type PriceResolver interface {
	NightPrices(ctx context.Context, roomTypeID int64, nights []time.Time, settings *domain.HotelSettings) ([]*domain.ResolvedPrice, error)
	StayPrice(ctx context.Context, roomTypeID int64, mode domain.RentalMode, start time.Time, settings *domain.HotelSettings) (*domain.ResolvedPrice, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
