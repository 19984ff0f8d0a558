package adjust_checkout

import (
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// Request перенос планового выезда
type Request struct {
	BookingID   int64
	NewCheckOut time.Time
}

// Response результат переноса
type Response struct {
	Booking      *domain.Booking
	AddedNights  int
	RemovedLines int
	ShiftedLines int
}
