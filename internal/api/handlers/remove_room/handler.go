package remove_room

import (
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	bookingModels "github.com/m04kA/SMC-HotelService/internal/service/bookings/models"
	removeRoom "github.com/m04kA/SMC-HotelService/internal/usecase/remove_room"
)

const route = "DELETE /bookings/{id}/rooms/{roomId}"

// RemoveRoomResponse HTTP response model
type RemoveRoomResponse struct {
	Booking      *bookingModels.BookingResponse `json:"booking"`
	RemovedLines int                            `json:"removedLines"`
}

type Handler struct {
	useCase RemoveRoomUseCase
	logger  Logger
}

func NewHandler(useCase RemoveRoomUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings/{bookingId}/rooms/{roomId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}
	roomID, err := handlers.PathInt64(r, "roomId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &removeRoom.Request{BookingID: bookingID, RoomID: roomID})
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Room removed: booking_id=%d, room_id=%d", route, bookingID, roomID)
	handlers.RespondJSON(w, http.StatusOK, &RemoveRoomResponse{
		Booking:      bookingModels.FromDomainBooking(result.Booking),
		RemovedLines: result.RemovedLines,
	})
}
