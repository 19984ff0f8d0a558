package pricing

import (
	"errors"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

var (
	// ErrNoPriceConfigured возвращается, когда для (тип комнаты, режим аренды) нет ни SPECIAL, ни BASE цены.
	// Это ошибка настройки данных, а не запроса.
	ErrNoPriceConfigured = domain.Kind(domain.ErrConfiguration, "pricing: no price configured")

	// ErrRoomTypeNotFound возвращается, когда тип комнаты не найден
	ErrRoomTypeNotFound = domain.Kind(domain.ErrNotFound, "pricing: room type not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Kind(domain.ErrValidation, "pricing: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("pricing: internal error")
)
