package usage

import "errors"

var (
	// ErrLineNotFound возвращается, когда строка использования не найдена
	ErrLineNotFound = errors.New("usage.repository: usage line not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("usage.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("usage.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("usage.repository: failed to scan row")
)
