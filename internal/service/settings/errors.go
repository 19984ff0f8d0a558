package settings

import (
	"errors"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Kind(domain.ErrValidation, "settings: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга раннего заезда не найдена или неактивна
	ErrServiceNotFound = domain.Kind(domain.ErrNotFound, "settings: early check-in service not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("settings: internal error")
)
