package availability

import "time"

// Query запрос свободной ёмкости типа комнат в окне [From, To)
type Query struct {
	RoomTypeID int64
	From       time.Time
	To         time.Time

	// ExcludeHoldID удержание, которое расходуется текущей операцией и не должно учитываться
	ExcludeHoldID *int64
}
