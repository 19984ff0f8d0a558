package lifecycle

import (
	"errors"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.Kind(domain.ErrNotFound, "lifecycle: booking not found")

	// ErrDepositNotPaid причина конфликта: нет оплаченного депозитного счёта
	ErrDepositNotPaid = errors.New("lifecycle: deposit invoice is not paid")

	// ErrNoRooms возвращается при заселении бронирования без комнат
	ErrNoRooms = domain.Kind(domain.ErrValidation, "lifecycle: booking has no rooms")

	// ErrInvalidCheckIn возвращается, если фактическое время заезда в будущем или не раньше выезда
	ErrInvalidCheckIn = domain.Kind(domain.ErrValidation, "lifecycle: invalid actual check-in")

	// ErrTooEarlyForNoShow возвращается при отметке неявки до планового заезда
	ErrTooEarlyForNoShow = domain.Kind(domain.ErrValidation, "lifecycle: planned check-in has not passed yet")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Kind(domain.ErrValidation, "lifecycle: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("lifecycle: internal error")
)
