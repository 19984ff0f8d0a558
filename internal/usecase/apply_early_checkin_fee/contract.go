package apply_early_checkin_fee

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/service/ledger"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// ChargeRepository начисления и каталог услуг
type ChargeRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	Create(ctx context.Context, charge *domain.ServiceCharge) error
	Update(ctx context.Context, charge *domain.ServiceCharge) error
}

// SettingsProvider источник действующей политики отеля
type SettingsProvider interface {
	Current(ctx context.Context) (*domain.HotelSettings, error)
}

// Ledger журнал строк использования
type Ledger interface {
	Load(ctx context.Context, booking *domain.Booking, settings *domain.HotelSettings) (*ledger.Stay, error)
}

// Recalculator пересчёт итогов
type Recalculator interface {
	RecalculateBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
