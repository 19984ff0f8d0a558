package adjust_checkout

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/service/availability"
	"github.com/m04kA/SMC-HotelService/internal/service/ledger"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// SettingsProvider источник действующей политики отеля
type SettingsProvider interface {
	Current(ctx context.Context) (*domain.HotelSettings, error)
}

// ConflictChecker проверка конфликтов по конкретным комнатам
type ConflictChecker interface {
	EnsureRoomsFree(ctx context.Context, operation string, roomIDs []int64, excludeBookingID *int64, q availability.Query) error
}

// Ledger журнал строк использования
type Ledger interface {
	Load(ctx context.Context, booking *domain.Booking, settings *domain.HotelSettings) (*ledger.Stay, error)
	AddResolvedNights(ctx context.Context, stay *ledger.Stay, roomID int64, nights []time.Time) ([]*domain.UsageLine, error)
	RemoveLines(ctx context.Context, stay *ledger.Stay, lines []*domain.UsageLine) (int, error)
	ShiftHours(ctx context.Context, stay *ledger.Stay, start, end *time.Time) (int, error)
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
