package invoice

import "errors"

var (
	// ErrInvoiceNotFound возвращается, когда счёт не найден
	ErrInvoiceNotFound = errors.New("invoice.repository: invoice not found")

	// ErrLinkNotFound возвращается, когда бронирование не привязано к счёту
	ErrLinkNotFound = errors.New("invoice.repository: invoice link not found")

	// ErrLinkExists возвращается при повторной привязке бронирования к счёту
	ErrLinkExists = errors.New("invoice.repository: invoice link already exists")

	// ErrPaymentRefExists возвращается, если ссылка на платёж уже использована другим счётом
	ErrPaymentRefExists = errors.New("invoice.repository: payment reference already used")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("invoice.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("invoice.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("invoice.repository: failed to scan row")
)
