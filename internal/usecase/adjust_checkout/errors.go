package adjust_checkout

import (
	"errors"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.Kind(domain.ErrNotFound, "adjust_checkout: booking not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Kind(domain.ErrValidation, "adjust_checkout: invalid input data")

	// ErrNoDateChange новый выезд в тот же день: ночи не меняются
	ErrNoDateChange = domain.Kind(domain.ErrValidation, "adjust_checkout: check-out date does not change")

	// ErrStayTooLong проживание длиннее допустимого
	ErrStayTooLong = domain.Kind(domain.ErrValidation, "adjust_checkout: stay is too long")

	// ErrNoNightsLeft после переноса не остаётся ни одной ночи
	ErrNoNightsLeft = domain.Kind(domain.ErrValidation, "adjust_checkout: no nights left")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("adjust_checkout: internal error")
)
