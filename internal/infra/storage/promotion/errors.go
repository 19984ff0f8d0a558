package promotion

import "errors"

var (
	// ErrPromotionNotFound возвращается, когда акция не найдена
	ErrPromotionNotFound = errors.New("promotion.repository: promotion not found")

	// ErrApplicationNotFound возвращается, когда к бронированию не применена акция
	ErrApplicationNotFound = errors.New("promotion.repository: promotion application not found")

	// ErrApplicationExists возвращается при нарушении уникальности (одна акция на бронирование)
	ErrApplicationExists = errors.New("promotion.repository: booking already has a promotion")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("promotion.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("promotion.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("promotion.repository: failed to scan row")
)
