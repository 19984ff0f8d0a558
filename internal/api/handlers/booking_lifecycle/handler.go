package booking_lifecycle

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/internal/service/lifecycle"
)

type Handler struct {
	service LifecycleService
	loc     *time.Location
	logger  Logger
}

func NewHandler(service LifecycleService, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		service: service,
		loc:     loc,
		logger:  logger,
	}
}

// Confirm POST /api/v1/bookings/{bookingId}/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.simple(w, r, "POST /bookings/{id}/confirm", h.service.Confirm)
}

// CheckOut POST /api/v1/bookings/{bookingId}/checkout
func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.simple(w, r, "POST /bookings/{id}/checkout", h.service.CheckOut)
}

// NoShow POST /api/v1/bookings/{bookingId}/no-show
func (h *Handler) NoShow(w http.ResponseWriter, r *http.Request) {
	h.simple(w, r, "POST /bookings/{id}/no-show", h.service.NoShow)
}

// CheckIn POST /api/v1/bookings/{bookingId}/checkin
func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	const route = "POST /bookings/{id}/checkin"

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	serviceReq := &lifecycle.CheckInRequest{BookingID: bookingID}
	if r.ContentLength > 0 {
		var req CheckInRequest
		if err := handlers.DecodeAndValidate(r, &req); err != nil {
			handlers.HandleError(w, h.logger, route, err)
			return
		}
		if req.ActualCheckIn != nil {
			at, _, err := handlers.ParseDateTime(*req.ActualCheckIn, h.loc)
			if err != nil {
				handlers.HandleError(w, h.logger, route, err)
				return
			}
			serviceReq.ActualCheckIn = &at
		}
	}

	result, err := h.service.CheckIn(r.Context(), serviceReq)
	h.respond(w, route, bookingID, result, err)
}

// Cancel POST /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	const route = "POST /bookings/{id}/cancel"

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	var req CancelRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeAndValidate(r, &req); err != nil {
			handlers.HandleError(w, h.logger, route, err)
			return
		}
	}

	result, err := h.service.Cancel(r.Context(), &lifecycle.CancelRequest{BookingID: bookingID, Reason: req.Reason})
	h.respond(w, route, bookingID, result, err)
}

func (h *Handler) simple(w http.ResponseWriter, r *http.Request, route string,
	transition func(ctx context.Context, bookingID int64) (*lifecycle.Result, error)) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	result, err := transition(r.Context(), bookingID)
	h.respond(w, route, bookingID, result, err)
}

func (h *Handler) respond(w http.ResponseWriter, route string, bookingID int64, result *lifecycle.Result, err error) {
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Booking moved: booking_id=%d, %s -> %s", route, bookingID, result.From, result.To)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(result))
}
