package remove_room

import (
	"errors"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.Kind(domain.ErrNotFound, "remove_room: booking not found")

	// ErrRoomNotInBooking возвращается, когда у комнаты нет активных строк в бронировании
	ErrRoomNotInBooking = domain.Kind(domain.ErrNotFound, "remove_room: room is not in the booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Kind(domain.ErrValidation, "remove_room: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("remove_room: internal error")
)
