package add_room

import (
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	addRoom "github.com/m04kA/SMC-HotelService/internal/usecase/add_room"
)

const route = "POST /bookings/{id}/items"

type Handler struct {
	useCase AddRoomUseCase
	logger  Logger
}

func NewHandler(useCase AddRoomUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/items
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	var req AddRoomRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &addRoom.Request{BookingID: bookingID, RoomID: req.RoomID})
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Room added: booking_id=%d, room_id=%d, lines=%d", route, bookingID, req.RoomID, len(result.Lines))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
