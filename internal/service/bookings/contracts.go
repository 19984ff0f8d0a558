package bookings

import (
	"context"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// UsageRepository интерфейс репозитория строк использования
type UsageRepository interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.UsageLine, error)
}

// ChargeRepository интерфейс репозитория начислений
type ChargeRepository interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.ServiceCharge, error)
}

// PromotionRepository интерфейс репозитория применённых акций
type PromotionRepository interface {
	GetApplication(ctx context.Context, bookingID int64) (*domain.PromotionApplication, error)
}

// InvoiceRepository интерфейс репозитория счетов
type InvoiceRepository interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.Invoice, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
