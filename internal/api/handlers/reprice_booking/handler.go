package reprice_booking

import (
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	bookingModels "github.com/m04kA/SMC-HotelService/internal/service/bookings/models"
)

const route = "POST /bookings/{id}/reprice"

// RepriceResponse HTTP response model
type RepriceResponse struct {
	Booking      *bookingModels.BookingResponse `json:"booking"`
	ChangedLines int                            `json:"changedLines"`
}

type Handler struct {
	useCase RepriceBookingUseCase
	logger  Logger
}

func NewHandler(useCase RepriceBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/reprice
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), bookingID)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Booking repriced: booking_id=%d, changed_lines=%d", route, bookingID, result.ChangedLines)
	handlers.RespondJSON(w, http.StatusOK, &RepriceResponse{
		Booking:      bookingModels.FromDomainBooking(result.Booking),
		ChangedLines: result.ChangedLines,
	})
}
