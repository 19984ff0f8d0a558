package get_availability

import "time"

// Request модель запроса свободной ёмкости
type Request struct {
	RoomTypeID int64
	From       time.Time
	To         time.Time
	// ByNight from/to - даты; окно строится по стандартным часам заезда и выезда,
	// в ответ добавляется разбивка по ночам
	ByNight bool
}

// Response свободная ёмкость во всём окне
type Response struct {
	RoomTypeID int64
	From       time.Time
	To         time.Time
	TotalRooms int
	Occupied   int
	Held       int
	Available  int // обрезано до 0
	Nights     []Night
}

// Night свободная ёмкость на одну ночь
type Night struct {
	Date      time.Time
	Available int
}
