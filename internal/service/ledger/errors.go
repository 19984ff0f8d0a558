package ledger

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках журнала использования
	ErrInternal = errors.New("ledger: internal error")
)
