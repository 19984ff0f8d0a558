package apply_early_checkin_fee

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// Request начисление платы за ранний заезд
type Request struct {
	BookingID int64
	// ArrivedAt фактическое время прибытия; nil - текущее время
	ArrivedAt *time.Time
}

// Response результат начисления
type Response struct {
	Booking    *domain.Booking
	HoursEarly int
	// Fee сумма платы за ранний заезд по всем комнатам
	Fee     decimal.Decimal
	Charges []*domain.ServiceCharge
}
