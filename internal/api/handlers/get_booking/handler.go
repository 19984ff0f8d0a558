package get_booking

import (
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
)

const route = "GET /bookings/{id}"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Booking retrieved: booking_id=%d, lines=%d", route, bookingID, len(booking.Lines))
	handlers.RespondJSON(w, http.StatusOK, booking)
}
