package charge

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга каталога не найдена
	ErrServiceNotFound = errors.New("charge.repository: service not found")

	// ErrChargeNotFound возвращается, когда начисление не найдено
	ErrChargeNotFound = errors.New("charge.repository: service charge not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("charge.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("charge.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("charge.repository: failed to scan row")
)
