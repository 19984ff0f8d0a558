package holds

import (
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
)

type Handler struct {
	service  HoldService
	settings SettingsProvider
	logger   Logger
}

func NewHandler(service HoldService, settings SettingsProvider, logger Logger) *Handler {
	return &Handler{
		service:  service,
		settings: settings,
		logger:   logger,
	}
}

// Create POST /api/v1/holds
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const route = "POST /holds"

	var req CreateHoldRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	settings, err := h.settings.Current(r.Context())
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	serviceReq, err := req.ToServiceRequest(settings)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	hold, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Hold created: hold_id=%d, room_type_id=%d, quantity=%d",
		route, hold.ID, hold.RoomTypeID, hold.Quantity)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainHold(hold))
}

// Release DELETE /api/v1/holds/{holdId}
func (h *Handler) Release(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /holds/{id}"

	holdID, err := handlers.PathInt64(r, "holdId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	hold, err := h.service.Release(r.Context(), holdID)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Hold released: hold_id=%d", route, holdID)
	handlers.RespondJSON(w, http.StatusOK, FromDomainHold(hold))
}
