package invoices

import (
	"errors"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

var (
	// ErrInvoiceNotFound возвращается, когда счёт не найден
	ErrInvoiceNotFound = domain.Kind(domain.ErrNotFound, "invoices: invoice not found")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.Kind(domain.ErrNotFound, "invoices: booking not found")

	// ErrLinkNotFound возвращается, когда бронирование не привязано к счёту
	ErrLinkNotFound = domain.Kind(domain.ErrNotFound, "invoices: invoice link not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Kind(domain.ErrValidation, "invoices: invalid input data")

	// ErrInvoiceFrozen причина конфликта: счёт оплачен или аннулирован
	ErrInvoiceFrozen = errors.New("invoices: invoice is paid or void")

	// ErrNotIssued причина конфликта: оплатить можно только выставленный счёт
	ErrNotIssued = errors.New("invoices: invoice is not issued")

	// ErrAlreadyLinked причина конфликта: бронирование уже привязано к счёту
	ErrAlreadyLinked = errors.New("invoices: booking already linked")

	// ErrDuplicatePayment причина конфликта: ссылка платежа уже использована другим счётом
	ErrDuplicatePayment = errors.New("invoices: payment reference already used")

	// ErrBookingInactive причина конфликта: отменённое бронирование нельзя привязать
	ErrBookingInactive = errors.New("invoices: booking is cancelled or no-show")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("invoices: internal error")
)
