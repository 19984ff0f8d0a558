package settings

import (
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/internal/service/settings/models"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/v1/settings
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const route = "GET /settings"

	settings, err := h.service.Current(r.Context())
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSettings(settings))
}

// Update PUT /api/v1/settings
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /settings"

	var req UpdateSettingsRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	settings, err := h.service.Update(r.Context(), serviceReq)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Settings updated: deposit_rate=%s, check_in=%s, check_out=%s",
		route, settings.DepositRate, settings.StandardCheckIn, settings.StandardCheckOut)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSettings(settings))
}
