package adjust_checkin

import (
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	adjustCheckIn "github.com/m04kA/SMC-HotelService/internal/usecase/adjust_checkin"
)

const route = "POST /bookings/{id}/adjust-checkin"

type Handler struct {
	useCase  AdjustCheckInUseCase
	settings handlers.SettingsProvider
	logger   Logger
}

func NewHandler(useCase AdjustCheckInUseCase, settings handlers.SettingsProvider, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		settings: settings,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/adjust-checkin
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	var req AdjustCheckInRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	settings, err := h.settings.Current(r.Context())
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	at, err := handlers.ParseStayBoundary(req.CheckIn, settings, settings.StandardCheckIn)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &adjustCheckIn.Request{BookingID: bookingID, NewCheckIn: at})
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Stay adjusted: booking_id=%d, added_nights=%d, removed_lines=%d, shifted_lines=%d",
		route, bookingID, result.AddedNights, result.RemovedLines, result.ShiftedLines)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
