package get_availability

import (
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
)

const route = "GET /room-types/{id}/availability"

type Handler struct {
	useCase  GetAvailabilityUseCase
	settings SettingsProvider
	logger   Logger
}

func NewHandler(useCase GetAvailabilityUseCase, settings SettingsProvider, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		settings: settings,
		logger:   logger,
	}
}

// Handle GET /api/v1/room-types/{roomTypeId}/availability
// Query params: from, to (YYYY-MM-DD или RFC3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomTypeID, err := handlers.PathInt64(r, "roomTypeId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	settings, err := h.settings.Current(r.Context())
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	useCaseReq, err := ToUseCaseRequest(roomTypeID, r.URL.Query(), settings.Location)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Availability retrieved: room_type_id=%d, available=%d", route, roomTypeID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
