package domain

import "time"

// RoomStatus housekeeping/occupancy status of a physical room
type RoomStatus string

const (
	RoomAvailable     RoomStatus = "available"
	RoomOccupied      RoomStatus = "occupied"
	RoomMaintenance   RoomStatus = "maintenance"
	RoomNeedsCleaning RoomStatus = "needs_cleaning"
)

// RoomTypeStatus lifecycle status of a room type
type RoomTypeStatus string

const (
	RoomTypeActive  RoomTypeStatus = "active"
	RoomTypeRetired RoomTypeStatus = "retired"
)

// RoomType категория комнат
type RoomType struct {
	ID           int64
	Code         string
	Name         string
	MaxOccupancy int
	Status       RoomTypeStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (t *RoomType) IsActive() bool {
	return t.Status == RoomTypeActive
}

// Room физическая комната
type Room struct {
	ID         int64
	RoomTypeID int64
	Name       string
	Floor      int
	Status     RoomStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsBookable комнату на обслуживании нельзя добавить в бронирование
func (r *Room) IsBookable() bool {
	return r.Status != RoomMaintenance
}

// HousekeepingTaskStatus статус задачи уборки
type HousekeepingTaskStatus string

const (
	TaskOpen HousekeepingTaskStatus = "open"
	TaskDone HousekeepingTaskStatus = "done"
)

// HousekeepingTask задача на уборку после выезда
type HousekeepingTask struct {
	ID        int64
	RoomID    int64
	BookingID *int64
	Kind      string
	Status    HousekeepingTaskStatus
	DueAt     time.Time
	CreatedAt time.Time
}

const TaskKindCleaning = "cleaning"
