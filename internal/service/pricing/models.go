package pricing

import (
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// CalendarDay цена одной ночи календаря
type CalendarDay struct {
	Date  time.Time
	Price *domain.ResolvedPrice
}

// Calendar разбивка цен по дням [From, To)
type Calendar struct {
	RoomTypeID int64
	RentalMode domain.RentalMode
	From       time.Time
	To         time.Time
	Days       []*CalendarDay
}
