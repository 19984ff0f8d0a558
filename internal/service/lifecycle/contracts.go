package lifecycle

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/service/availability"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// UsageRepository интерфейс репозитория строк использования
type UsageRepository interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.UsageLine, error)
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	UpdateRoomsStatus(ctx context.Context, ids []int64, status domain.RoomStatus) error
}

// InvoiceRepository интерфейс репозитория счетов
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.Invoice, error)
	CreateLink(ctx context.Context, link *domain.InvoiceLink) error
}

// HousekeepingRepository интерфейс репозитория задач уборки
type HousekeepingRepository interface {
	Create(ctx context.Context, task *domain.HousekeepingTask) error
}

// AvailabilityChecker проверка конфликтов по комнатам
type AvailabilityChecker interface {
	EnsureRoomsFree(ctx context.Context, operation string, roomIDs []int64, excludeBookingID *int64, q availability.Query) error
}

// Recalculator пересчёт итогов
type Recalculator interface {
	RecalculateBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
	RecalculateInvoicesOf(ctx context.Context, bookingID int64) error
}

// TransitionRecorder учёт переходов жизненного цикла (метрики)
type TransitionRecorder interface {
	Transition(from, to string)
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
