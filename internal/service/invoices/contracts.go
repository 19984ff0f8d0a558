package invoices

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// InvoiceRepository интерфейс репозитория счетов
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	Update(ctx context.Context, inv *domain.Invoice) error
	MarkPaid(ctx context.Context, id int64, paidAt time.Time, paymentRef string) (bool, error)
	CreateLink(ctx context.Context, link *domain.InvoiceLink) error
	DeleteLink(ctx context.Context, invoiceID, bookingID int64) error
	ListBookingIDs(ctx context.Context, invoiceID int64) ([]int64, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// HoldRepository интерфейс репозитория удержаний
type HoldRepository interface {
	ListByInvoice(ctx context.Context, invoiceID int64) ([]*domain.ProvisionalHold, error)
	UpdateStatus(ctx context.Context, id int64, status domain.HoldStatus) error
}

// Recalculator пересчёт итогов
type Recalculator interface {
	RecalculateBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
	RecalculateInvoice(ctx context.Context, invoiceID int64) (*domain.Invoice, error)
}

// TransitionRecorder учёт переходов жизненного цикла (метрики)
type TransitionRecorder interface {
	Transition(from, to string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
