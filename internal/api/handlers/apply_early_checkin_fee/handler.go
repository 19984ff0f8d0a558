package apply_early_checkin_fee

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	earlyFee "github.com/m04kA/SMC-HotelService/internal/usecase/apply_early_checkin_fee"
)

const route = "POST /bookings/{id}/apply-early-checkin-fee"

type Handler struct {
	useCase EarlyCheckInFeeUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase EarlyCheckInFeeUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/apply-early-checkin-fee
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	useCaseReq := &earlyFee.Request{BookingID: bookingID}
	if r.ContentLength > 0 {
		var req EarlyCheckInFeeRequest
		if err := handlers.DecodeAndValidate(r, &req); err != nil {
			handlers.HandleError(w, h.logger, route, err)
			return
		}
		if req.ArrivedAt != nil {
			at, _, err := handlers.ParseDateTime(*req.ArrivedAt, h.loc)
			if err != nil {
				handlers.HandleError(w, h.logger, route, err)
				return
			}
			useCaseReq.ArrivedAt = &at
		}
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Early check-in fee applied: booking_id=%d, hours=%d, fee=%s",
		route, bookingID, result.HoursEarly, result.Fee)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
