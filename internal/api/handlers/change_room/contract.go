package change_room

import (
	"context"

	changeRoom "github.com/m04kA/SMC-HotelService/internal/usecase/change_room"
)

type ChangeRoomUseCase interface {
	Execute(ctx context.Context, req *changeRoom.Request) (*changeRoom.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
