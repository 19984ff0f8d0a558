package remove_room

import "github.com/m04kA/SMC-HotelService/internal/domain"

// Request удаление комнаты из бронирования
type Request struct {
	BookingID int64
	RoomID    int64
}

// Response пересчитанное бронирование
type Response struct {
	Booking *domain.Booking
	// RemovedLines удалённые или отменённые строки комнаты
	RemovedLines int
}
