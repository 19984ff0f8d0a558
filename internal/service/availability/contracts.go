package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetRoomTypeByID(ctx context.Context, id int64) (*domain.RoomType, error)
	ListRoomsByType(ctx context.Context, roomTypeID int64) ([]*domain.Room, error)
}

// OccupancyRepository выборка занятых комнат
type OccupancyRepository interface {
	ListOccupancy(ctx context.Context, filter domain.OccupancyFilter) ([]*domain.RoomOccupancy, error)
}

// HoldRepository интерфейс репозитория предварительных удержаний
type HoldRepository interface {
	ListActiveOverlapping(ctx context.Context, roomTypeID int64, from, to time.Time) ([]*domain.ProvisionalHold, error)
}

// ConflictRecorder учёт отклонённых из-за конфликта операций (метрики)
type ConflictRecorder interface {
	Conflict(operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
