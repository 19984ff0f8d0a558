package adjust_checkout

import (
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	adjustCheckOut "github.com/m04kA/SMC-HotelService/internal/usecase/adjust_checkout"
)

const route = "POST /bookings/{id}/adjust-checkout"

type Handler struct {
	useCase  AdjustCheckOutUseCase
	settings handlers.SettingsProvider
	logger   Logger
}

func NewHandler(useCase AdjustCheckOutUseCase, settings handlers.SettingsProvider, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		settings: settings,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/adjust-checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	var req AdjustCheckOutRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	settings, err := h.settings.Current(r.Context())
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	at, err := handlers.ParseStayBoundary(req.CheckOut, settings, settings.StandardCheckOut)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &adjustCheckOut.Request{BookingID: bookingID, NewCheckOut: at})
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Stay adjusted: booking_id=%d, added_nights=%d, removed_lines=%d, shifted_lines=%d",
		route, bookingID, result.AddedNights, result.RemovedLines, result.ShiftedLines)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
