package add_room

import (
	"context"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/service/availability"
	"github.com/m04kA/SMC-HotelService/internal/service/ledger"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetRoomByID(ctx context.Context, id int64) (*domain.Room, error)
}

// SettingsProvider источник действующей политики отеля
type SettingsProvider interface {
	Current(ctx context.Context) (*domain.HotelSettings, error)
}

// AvailabilityChecker проверки доступности
type AvailabilityChecker interface {
	EnsureRoomsFree(ctx context.Context, operation string, roomIDs []int64, excludeBookingID *int64, q availability.Query) error
	EnsureCapacity(ctx context.Context, operation string, q availability.Query, n int) error
}

// Ledger журнал строк использования
type Ledger interface {
	Load(ctx context.Context, booking *domain.Booking, settings *domain.HotelSettings) (*ledger.Stay, error)
	AddRoom(ctx context.Context, stay *ledger.Stay, room *domain.Room) ([]*domain.UsageLine, error)
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
