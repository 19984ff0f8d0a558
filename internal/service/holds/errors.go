package holds

import (
	"errors"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

var (
	// ErrHoldNotFound возвращается, когда удержание не найдено
	ErrHoldNotFound = domain.Kind(domain.ErrNotFound, "holds: hold not found")

	// ErrInvoiceNotFound возвращается, когда счёт удержания не найден
	ErrInvoiceNotFound = domain.Kind(domain.ErrNotFound, "holds: invoice not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Kind(domain.ErrValidation, "holds: invalid input data")

	// ErrInvoiceVoid причина конфликта: удержание нельзя привязать к аннулированному счёту
	ErrInvoiceVoid = errors.New("holds: invoice is void")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("holds: internal error")
)
