package create_booking

import (
	"errors"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

var (
	// ErrGuestNotFound возвращается, когда гость не найден в справочнике
	ErrGuestNotFound = domain.Kind(domain.ErrNotFound, "create_booking: guest not found")

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = domain.Kind(domain.ErrNotFound, "create_booking: room not found")

	// ErrHoldNotFound возвращается, когда удержание не найдено
	ErrHoldNotFound = domain.Kind(domain.ErrNotFound, "create_booking: hold not found")

	// ErrInvalidStay возвращается при некорректных датах проживания
	ErrInvalidStay = domain.Kind(domain.ErrValidation, "create_booking: invalid stay dates")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Kind(domain.ErrValidation, "create_booking: invalid input data")

	// ErrRoomNotBookable причина конфликта: комната на обслуживании
	ErrRoomNotBookable = errors.New("create_booking: room is under maintenance")

	// ErrHoldMismatch причина конфликта: удержание не покрывает бронирование
	ErrHoldMismatch = errors.New("create_booking: hold does not cover the booking")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
