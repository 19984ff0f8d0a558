package domain

import "time"

// RoomTypeAvailability свободная ёмкость типа комнат в окне
type RoomTypeAvailability struct {
	RoomTypeID    int64
	From          time.Time
	To            time.Time
	TotalRooms    int
	OccupiedRooms int
	HeldRooms     int
	Available     int // может быть <= 0; для отображения обрезается до 0
}

// DisplayAvailable clamps to zero
func (a *RoomTypeAvailability) DisplayAvailable() int {
	if a.Available < 0 {
		return 0
	}
	return a.Available
}

// HasCapacity write-side check
func (a *RoomTypeAvailability) HasCapacity(n int) bool {
	return a.Available >= n
}

// IsFull returns true if no rooms are free
func (a *RoomTypeAvailability) IsFull() bool {
	return a.Available <= 0
}
