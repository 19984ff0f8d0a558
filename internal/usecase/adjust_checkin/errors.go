package adjust_checkin

import (
	"errors"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.Kind(domain.ErrNotFound, "adjust_checkin: booking not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Kind(domain.ErrValidation, "adjust_checkin: invalid input data")

	// ErrNoDateChange новый заезд в тот же день: ночи не меняются (для раннего заезда - платная услуга)
	ErrNoDateChange = domain.Kind(domain.ErrValidation, "adjust_checkin: check-in date does not change")

	// ErrStayTooLong проживание длиннее допустимого
	ErrStayTooLong = domain.Kind(domain.ErrValidation, "adjust_checkin: stay is too long")

	// ErrNoNightsLeft после переноса не остаётся ни одной ночи
	ErrNoNightsLeft = domain.Kind(domain.ErrValidation, "adjust_checkin: no nights left")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("adjust_checkin: internal error")
)
