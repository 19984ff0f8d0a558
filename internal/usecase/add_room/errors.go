package add_room

import (
	"errors"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.Kind(domain.ErrNotFound, "add_room: booking not found")

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = domain.Kind(domain.ErrNotFound, "add_room: room not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Kind(domain.ErrValidation, "add_room: invalid input data")

	// ErrRoomAlreadyAdded причина конфликта: комната уже есть в бронировании
	ErrRoomAlreadyAdded = errors.New("add_room: room is already in the booking")

	// ErrRoomNotBookable причина конфликта: комната на обслуживании
	ErrRoomNotBookable = errors.New("add_room: room is under maintenance")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("add_room: internal error")
)
