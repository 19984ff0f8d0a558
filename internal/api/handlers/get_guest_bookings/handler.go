package get_guest_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
)

const route = "GET /guests/{id}/bookings"

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

// Handle GET /api/v1/guests/{guestId}/bookings
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	guestID, err := handlers.PathInt64(r, "guestId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	var status *string
	if s := r.URL.Query().Get("status"); s != "" {
		status = &s
	}

	result, err := h.service.GetGuestBookings(r.Context(), guestID, status)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Bookings retrieved: guest_id=%d, count=%d", route, guestID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
