package apply_early_checkin_fee

import (
	"errors"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.Kind(domain.ErrNotFound, "apply_early_checkin_fee: booking not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Kind(domain.ErrValidation, "apply_early_checkin_fee: invalid input data")

	// ErrNotNightly плата за ранний заезд только для посуточных бронирований
	ErrNotNightly = domain.Kind(domain.ErrValidation, "apply_early_checkin_fee: booking is not nightly")

	// ErrTooEarly прибытие раньше допустимого: нужно переносить дату заезда
	ErrTooEarly = domain.Kind(domain.ErrValidation, "apply_early_checkin_fee: too early, adjust the check-in date instead")

	// ErrWithinGrace прибытие в льготное окно, платы нет
	ErrWithinGrace = domain.Kind(domain.ErrValidation, "apply_early_checkin_fee: arrival is within the grace window")

	// ErrNoRooms у бронирования нет активных строк
	ErrNoRooms = domain.Kind(domain.ErrValidation, "apply_early_checkin_fee: booking has no rooms")

	// ErrFeeServiceMissing услуга платы за ранний заезд не настроена или не найдена
	ErrFeeServiceMissing = domain.Kind(domain.ErrConfiguration, "apply_early_checkin_fee: early check-in service is not configured")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("apply_early_checkin_fee: internal error")
)
