package recalc

import (
	"errors"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.Kind(domain.ErrNotFound, "recalc: booking not found")

	// ErrInvoiceNotFound возвращается, когда счёт не найден
	ErrInvoiceNotFound = domain.Kind(domain.ErrNotFound, "recalc: invoice not found")

	// ErrInternal возвращается при внутренних ошибках пересчёта
	ErrInternal = errors.New("recalc: internal error")
)
