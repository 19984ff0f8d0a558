package availability

import (
	"errors"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

var (
	// ErrRoomUnavailable причина конфликта: комната занята другим бронированием
	ErrRoomUnavailable = errors.New("availability: room is occupied in the requested window")

	// ErrNoCapacity причина конфликта: у типа комнат нет свободной ёмкости
	ErrNoCapacity = errors.New("availability: no free capacity")

	// ErrRoomTypeNotFound возвращается, когда тип комнаты не найден
	ErrRoomTypeNotFound = domain.Kind(domain.ErrNotFound, "availability: room type not found")

	// ErrInvalidWindow возвращается при пустом или перевёрнутом окне
	ErrInvalidWindow = domain.Kind(domain.ErrValidation, "availability: invalid window")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
