package change_room

import (
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// Request перенос строк бронирования с одной комнаты на другую
type Request struct {
	BookingID  int64
	FromRoomID int64
	ToRoomID   int64
	// From, To диапазон дат ночей [From, To) для NIGHT-бронирований.
	// Пустая граница - начало или конец проживания.
	From *time.Time
	To   *time.Time
	// Reprice заново разрешить цены того же типа комнаты. При смене типа цены разрешаются всегда.
	Reprice bool
}

// HasRange задан ли диапазон ночей
func (r *Request) HasRange() bool {
	return r.From != nil || r.To != nil
}

// Response пересчитанное бронирование
type Response struct {
	Booking    *domain.Booking
	MovedLines int
	Repriced   bool
}
