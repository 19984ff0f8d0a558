package create_booking

import (
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	GuestID    int64     // ID гостя в справочнике
	RentalMode string    // "night" или "hour"
	CheckIn    time.Time // Плановый заезд
	CheckOut   time.Time // Плановый выезд
	RoomIDs    []int64   // Комнаты (опционально, можно добавить позже)
	Note       *string   // Заметка (опционально)
	HoldID     *int64    // Удержание, которое расходуется бронированием (опционально)
	CreatedBy  *int64    // Сотрудник (X-User-ID)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
	Lines   []*domain.UsageLine

	// GuestDegraded справочник гостей был недоступен, имя гостя не заполнено
	GuestDegraded bool
}
