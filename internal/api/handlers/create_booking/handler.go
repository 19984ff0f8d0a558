package create_booking

import (
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/internal/api/middleware"
)

const route = "POST /bookings"

type Handler struct {
	useCase  CreateBookingUseCase
	settings handlers.SettingsProvider
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, settings handlers.SettingsProvider, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		settings: settings,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	settings, err := h.settings.Current(r.Context())
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	var createdBy *int64
	if userID, ok := middleware.GetUserID(r.Context()); ok {
		createdBy = &userID
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат)
	useCaseReq, err := req.ToUseCaseRequest(settings, createdBy)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Booking created: booking_id=%d, guest_id=%d, rooms=%d",
		route, result.Booking.ID, req.GuestID, len(req.RoomIDs))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
