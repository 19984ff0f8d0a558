package charges

import "github.com/m04kA/SMC-HotelService/internal/domain"

// AddChargeRequest начисление услуги на строку использования.
// LineNo nil означает последнюю активную строку комнаты.
type AddChargeRequest struct {
	BookingID int64
	RoomID    int64
	LineNo    *int
	ServiceID int64
	Quantity  int
	Origin    domain.ChargeOrigin
}

// Result начисление и пересчитанное бронирование
type Result struct {
	Charge  *domain.ServiceCharge
	Booking *domain.Booking
}
