package add_room

import (
	"context"

	addRoom "github.com/m04kA/SMC-HotelService/internal/usecase/add_room"
)

type AddRoomUseCase interface {
	Execute(ctx context.Context, req *addRoom.Request) (*addRoom.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
