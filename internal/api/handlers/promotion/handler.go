package promotion

import (
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
)

type Handler struct {
	service PromotionService
	logger  Logger
}

func NewHandler(service PromotionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Apply POST /api/v1/bookings/{bookingId}/promotion
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	const route = "POST /bookings/{id}/promotion"

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	var req ApplyPromotionRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	result, err := h.service.Apply(r.Context(), bookingID, req.Code)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Promotion applied: booking_id=%d, code=%s, discount=%s",
		route, bookingID, req.Code, result.Application.Discount)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(result, true))
}

// Remove DELETE /api/v1/bookings/{bookingId}/promotion
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /bookings/{id}/promotion"

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	result, err := h.service.Remove(r.Context(), bookingID)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Promotion removed: booking_id=%d", route, bookingID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(result, false))
}
