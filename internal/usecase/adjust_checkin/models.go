package adjust_checkin

import (
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// Request перенос планового заезда
type Request struct {
	BookingID  int64
	NewCheckIn time.Time
}

// Response результат переноса
type Response struct {
	Booking *domain.Booking
	// AddedNights ночей добавлено на каждую комнату (ранний заезд, NIGHT)
	AddedNights int
	// RemovedLines строк удалено или отменено (поздний заезд, NIGHT)
	RemovedLines int
	// ShiftedLines HOUR-строк с переписанным началом; цена не пересчитывается
	ShiftedLines int
}
