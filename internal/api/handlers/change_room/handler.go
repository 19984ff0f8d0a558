package change_room

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	bookingModels "github.com/m04kA/SMC-HotelService/internal/service/bookings/models"
)

const route = "POST /bookings/{id}/change-room"

type Handler struct {
	useCase  ChangeRoomUseCase
	settings handlers.SettingsProvider
	logger   Logger
}

func NewHandler(useCase ChangeRoomUseCase, settings handlers.SettingsProvider, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		settings: settings,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/change-room
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	var req ChangeRoomRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	var from, to *time.Time
	if req.From != "" || req.To != "" {
		settings, err := h.settings.Current(r.Context())
		if err != nil {
			handlers.HandleError(w, h.logger, route, err)
			return
		}
		if from, err = parseDate(req.From, settings.Location); err != nil {
			handlers.HandleError(w, h.logger, route, err)
			return
		}
		if to, err = parseDate(req.To, settings.Location); err != nil {
			handlers.HandleError(w, h.logger, route, err)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, from, to))
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Room changed: booking_id=%d, %d -> %d, moved_lines=%d",
		route, bookingID, req.FromRoomID, req.ToRoomID, result.MovedLines)
	handlers.RespondJSON(w, http.StatusOK, &ChangeRoomResponse{
		Booking:    bookingModels.FromDomainBooking(result.Booking),
		MovedLines: result.MovedLines,
		Repriced:   result.Repriced,
	})
}

// parseDate необязательная граница диапазона, время суток отбрасывается use case
func parseDate(raw string, loc *time.Location) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, _, err := handlers.ParseDateTime(raw, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
