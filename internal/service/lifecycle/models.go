package lifecycle

import (
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// CheckInRequest заселение; ActualCheckIn nil означает "сейчас"
type CheckInRequest struct {
	BookingID     int64
	ActualCheckIn *time.Time
}

// CancelRequest отмена бронирования
type CancelRequest struct {
	BookingID int64
	Reason    *string
}

// Result результат перехода
type Result struct {
	Booking *domain.Booking
	From    domain.BookingStatus
	To      domain.BookingStatus

	// IssuedInvoiceID счёт, автоматически выставленный при выезде
	IssuedInvoiceID *int64
	// CleaningTasks число поставленных задач уборки
	CleaningTasks int
}
