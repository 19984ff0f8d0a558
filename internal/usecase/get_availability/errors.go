package get_availability

import (
	"errors"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Kind(domain.ErrValidation, "get_availability: invalid input data")

	// ErrRangeTooLong слишком длинный диапазон разбивки по ночам
	ErrRangeTooLong = domain.Kind(domain.ErrValidation, "get_availability: range is too long")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
