package promotions

import (
	"errors"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.Kind(domain.ErrNotFound, "promotions: booking not found")

	// ErrPromotionNotFound возвращается, когда акция с кодом не найдена
	ErrPromotionNotFound = domain.Kind(domain.ErrNotFound, "promotions: promotion not found")

	// ErrNotApplied возвращается при снятии акции с бронирования без акции
	ErrNotApplied = domain.Kind(domain.ErrNotFound, "promotions: booking has no promotion")

	// ErrNotApplicable возвращается, если акция неактивна или не действует сейчас
	ErrNotApplicable = domain.Kind(domain.ErrValidation, "promotions: promotion is not applicable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Kind(domain.ErrValidation, "promotions: invalid input data")

	// ErrAlreadyApplied причина конфликта: к бронированию уже применена акция
	ErrAlreadyApplied = errors.New("promotions: booking already has a promotion")

	// ErrInvoiceLocked причина конфликта: бронирование уже покрыто счётом
	ErrInvoiceLocked = errors.New("promotions: booking is already invoiced")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("promotions: internal error")
)
