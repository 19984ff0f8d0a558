package promotions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// PromotionRepository интерфейс репозитория акций
type PromotionRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Promotion, error)
	GetApplication(ctx context.Context, bookingID int64) (*domain.PromotionApplication, error)
	CreateApplication(ctx context.Context, a *domain.PromotionApplication) error
	DeleteApplication(ctx context.Context, bookingID int64) error
}

// InvoiceRepository интерфейс репозитория счетов
type InvoiceRepository interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.Invoice, error)
}

// SettingsProvider источник действующей политики отеля
type SettingsProvider interface {
	Current(ctx context.Context) (*domain.HotelSettings, error)
}

// Recalculator пересчёт итогов
type Recalculator interface {
	RecalculateBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
