package remove_room

import (
	"context"

	removeRoom "github.com/m04kA/SMC-HotelService/internal/usecase/remove_room"
)

type RemoveRoomUseCase interface {
	Execute(ctx context.Context, req *removeRoom.Request) (*removeRoom.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
