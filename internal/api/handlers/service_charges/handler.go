package service_charges

import (
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
)

type Handler struct {
	service ChargeService
	logger  Logger
}

func NewHandler(service ChargeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Add POST /api/v1/bookings/{bookingId}/services
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	const route = "POST /bookings/{id}/services"

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	var req AddChargeRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	serviceReq, err := req.ToServiceRequest(bookingID)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	result, err := h.service.Add(r.Context(), serviceReq)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Charge added: booking_id=%d, service_id=%d, quantity=%d",
		route, bookingID, req.ServiceID, req.Quantity)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResult(result))
}

// Update PATCH /api/v1/bookings/{bookingId}/services/{roomId}/{lineNo}/{serviceId}/{chargeNo}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /bookings/{id}/services/{key}"

	key, err := chargeKeyFromPath(r)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	var req UpdateChargeRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	result, err := h.service.UpdateQuantity(r.Context(), key, req.Quantity)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Charge updated: booking_id=%d, quantity=%d", route, key.BookingID, req.Quantity)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(result))
}

// Remove DELETE /api/v1/bookings/{bookingId}/services/{roomId}/{lineNo}/{serviceId}/{chargeNo}
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /bookings/{id}/services/{key}"

	key, err := chargeKeyFromPath(r)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	result, err := h.service.Remove(r.Context(), key)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Charge cancelled: booking_id=%d, service_id=%d", route, key.BookingID, key.ServiceID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(result))
}
