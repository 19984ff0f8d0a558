package charges

import (
	"context"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// UsageRepository интерфейс репозитория строк использования
type UsageRepository interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.UsageLine, error)
}

// ChargeRepository интерфейс репозитория начислений и каталога услуг
type ChargeRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.ServiceCharge, error)
	Create(ctx context.Context, c *domain.ServiceCharge) error
	Update(ctx context.Context, c *domain.ServiceCharge) error
}

// Recalculator пересчёт итогов
type Recalculator interface {
	RecalculateBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
