package charges

import (
	"errors"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.Kind(domain.ErrNotFound, "charges: booking not found")

	// ErrLineNotFound возвращается, когда у комнаты нет активной строки использования
	ErrLineNotFound = domain.Kind(domain.ErrNotFound, "charges: usage line not found")

	// ErrChargeNotFound возвращается, когда начисление не найдено
	ErrChargeNotFound = domain.Kind(domain.ErrNotFound, "charges: service charge not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = domain.Kind(domain.ErrNotFound, "charges: service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Kind(domain.ErrValidation, "charges: invalid input data")

	// ErrChargeCancelled причина конфликта: начисление уже отменено
	ErrChargeCancelled = errors.New("charges: service charge is cancelled")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("charges: internal error")
)
