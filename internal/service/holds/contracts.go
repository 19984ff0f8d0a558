package holds

import (
	"context"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/service/availability"
)

// HoldRepository интерфейс репозитория удержаний
type HoldRepository interface {
	Create(ctx context.Context, h *domain.ProvisionalHold) (*domain.ProvisionalHold, error)
	GetByID(ctx context.Context, id int64) (*domain.ProvisionalHold, error)
	UpdateStatus(ctx context.Context, id int64, status domain.HoldStatus) error
}

// InvoiceRepository интерфейс репозитория счетов
type InvoiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
}

// CapacityChecker проверка свободной ёмкости типа комнат
type CapacityChecker interface {
	EnsureCapacity(ctx context.Context, operation string, q availability.Query, n int) error
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
