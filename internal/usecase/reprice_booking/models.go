package reprice_booking

import "github.com/m04kA/SMC-HotelService/internal/domain"

// Response бронирование после переоценки строк
type Response struct {
	Booking *domain.Booking
	// ChangedLines строк, чья сумма изменилась
	ChangedLines int
}
