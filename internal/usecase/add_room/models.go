package add_room

import "github.com/m04kA/SMC-HotelService/internal/domain"

// Request добавление комнаты в бронирование на всё окно проживания
type Request struct {
	BookingID int64
	RoomID    int64
}

// Response пересчитанное бронирование и созданные строки
type Response struct {
	Booking *domain.Booking
	Lines   []*domain.UsageLine
}
