package pricing

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// PriceRepository интерфейс таблицы цен
type PriceRepository interface {
	GetBasePrice(ctx context.Context, roomTypeID int64, mode domain.RentalMode) (*domain.Price, error)
	ListSpecialPrices(ctx context.Context, roomTypeID int64, mode domain.RentalMode, from, to time.Time) ([]*domain.Price, error)
}

// RoomTypeRepository интерфейс репозитория типов комнат
type RoomTypeRepository interface {
	GetRoomTypeByID(ctx context.Context, id int64) (*domain.RoomType, error)
}

// SettingsProvider источник действующей политики отеля
type SettingsProvider interface {
	Current(ctx context.Context) (*domain.HotelSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
