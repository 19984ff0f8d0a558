package recalc

import (
	"context"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
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
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.Invoice, error)
	ListBookingIDs(ctx context.Context, invoiceID int64) ([]int64, error)
	Update(ctx context.Context, inv *domain.Invoice) error
}

// SettingsProvider источник действующей политики отеля
type SettingsProvider interface {
	Current(ctx context.Context) (*domain.HotelSettings, error)
}

// Recorder учёт пересчётов (метрики)
type Recorder interface {
	Recalculated(target string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
