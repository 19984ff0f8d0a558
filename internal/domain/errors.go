package domain

import (
	"errors"
	"fmt"
	"time"
)

// Error kinds. Package-level sentinels wrap one of them so the HTTP layer
// can map any error to a status code with errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrConfiguration = errors.New("configuration error")
)

// Kind wraps a kind into a package sentinel: Kind(ErrConflict, "lifecycle: illegal transition")
func Kind(kind error, msg string) error {
	return fmt.Errorf("%s: %w", msg, kind)
}

// RoomConflict описывает бронирование, занимающее комнату в запрошенном окне
type RoomConflict struct {
	RoomID    int64
	RoomName  string
	BookingID int64
	From      time.Time
	To        time.Time
}

// ConflictError ошибка конфликта с контекстом для исправления запроса клиентом
type ConflictError struct {
	Code     string
	Message  string
	Conflict *RoomConflict
	cause    error
}

// Conflict codes
const (
	CodeRoomConflict      = "ROOM_CONFLICT"
	CodeNoCapacity        = "NO_CAPACITY"
	CodeIllegalTransition = "ILLEGAL_TRANSITION"
	CodeStayLocked        = "STAY_LOCKED"
	CodeDuplicate         = "DUPLICATE"
	CodeInvoiceFrozen     = "INVOICE_FROZEN"
	CodeDepositNotPaid    = "DEPOSIT_NOT_PAID"
)

// NewConflictError создает конфликт; cause - пакетный sentinel (может быть nil)
func NewConflictError(code string, cause error, conflict *RoomConflict, format string, args ...interface{}) *ConflictError {
	return &ConflictError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Conflict: conflict,
		cause:    cause,
	}
}

func (e *ConflictError) Error() string {
	if e.Conflict != nil {
		return fmt.Sprintf("%s: room %d (%s) is held by booking %d from %s to %s",
			e.Message, e.Conflict.RoomID, e.Conflict.RoomName, e.Conflict.BookingID,
			e.Conflict.From.Format(DateTimeFormat), e.Conflict.To.Format(DateTimeFormat))
	}
	return e.Message
}

// Is позволяет errors.Is(err, ErrConflict) и errors.Is(err, <cause>)
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func (e *ConflictError) Unwrap() error {
	return e.cause
}

// AsConflict достает *ConflictError из цепочки
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
