package list_bookings

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
)

const route = "GET /bookings"

type Handler struct {
	service BookingService
	loc     *time.Location
	logger  Logger
}

func NewHandler(service BookingService, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		service: service,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
// Query params: guestId, status, from, to, includeInactive, limit, offset (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq, err := ToServiceRequest(r.URL.Query(), h.loc)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Bookings retrieved: count=%d", route, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
