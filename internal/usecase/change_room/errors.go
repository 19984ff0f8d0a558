package change_room

import (
	"errors"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.Kind(domain.ErrNotFound, "change_room: booking not found")

	// ErrRoomNotFound возвращается, когда новая комната не найдена
	ErrRoomNotFound = domain.Kind(domain.ErrNotFound, "change_room: room not found")

	// ErrRoomNotInBooking возвращается, когда у исходной комнаты нет активных строк
	ErrRoomNotInBooking = domain.Kind(domain.ErrNotFound, "change_room: room is not in the booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Kind(domain.ErrValidation, "change_room: invalid input data")

	// ErrRoomAlreadyAdded причина конфликта: новая комната уже в бронировании
	ErrRoomAlreadyAdded = errors.New("change_room: target room is already in the booking")

	// ErrRoomNotBookable причина конфликта: новая комната на обслуживании
	ErrRoomNotBookable = errors.New("change_room: target room is not bookable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("change_room: internal error")
)
