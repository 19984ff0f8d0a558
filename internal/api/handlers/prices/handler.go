package prices

import (
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
)

type Handler struct {
	service  PriceService
	settings SettingsProvider
	logger   Logger
}

func NewHandler(service PriceService, settings SettingsProvider, logger Logger) *Handler {
	return &Handler{
		service:  service,
		settings: settings,
		logger:   logger,
	}
}

// Resolve GET /api/v1/don-gia/resolve
// Query params: roomTypeId|LP_MA, rentalMode|HT_MA, date (YYYY-MM-DD)
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	const route = "GET /don-gia/resolve"

	query := r.URL.Query()
	pq, err := parsePriceQuery(query)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	settings, err := h.settings.Current(r.Context())
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	date, err := parseDate(query, "date", settings.Location)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	price, err := h.service.ResolveForDate(r.Context(), pq.roomTypeID, pq.mode, date)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Price resolved: room_type_id=%d, mode=%s, price=%s, period=%s",
		route, pq.roomTypeID, pq.mode, price.UnitPrice, price.PeriodKind)
	handlers.RespondJSON(w, http.StatusOK, FromDomainPrice(price, date))
}

// Calendar GET /api/v1/don-gia/calendar
// Query params: roomTypeId|LP_MA, rentalMode|HT_MA, from, to (YYYY-MM-DD, to не включается)
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	const route = "GET /don-gia/calendar"

	query := r.URL.Query()
	pq, err := parsePriceQuery(query)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	settings, err := h.settings.Current(r.Context())
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	from, err := parseDate(query, "from", settings.Location)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}
	to, err := parseDate(query, "to", settings.Location)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	calendar, err := h.service.Calendar(r.Context(), pq.roomTypeID, pq.mode, from, to)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Calendar built: room_type_id=%d, days=%d", route, pq.roomTypeID, len(calendar.Days))
	handlers.RespondJSON(w, http.StatusOK, FromCalendar(calendar))
}
