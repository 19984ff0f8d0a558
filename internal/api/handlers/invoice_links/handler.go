package invoice_links

import (
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
)

// LinkRequest HTTP request model
type LinkRequest struct {
	InvoiceID int64 `json:"invoiceId" validate:"required,gt=0"`
	BookingID int64 `json:"bookingId" validate:"required,gt=0"`
}

type Handler struct {
	service LinkService
	logger  Logger
}

func NewHandler(service LinkService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Link POST /api/v1/invoice-links
func (h *Handler) Link(w http.ResponseWriter, r *http.Request) {
	const route = "POST /invoice-links"

	var req LinkRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	invoice, err := h.service.Link(r.Context(), req.InvoiceID, req.BookingID)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Booking linked: invoice_id=%d, booking_id=%d, final=%s",
		route, req.InvoiceID, req.BookingID, invoice.FinalAmount)
	handlers.RespondJSON(w, http.StatusCreated, invoice)
}

// Unlink DELETE /api/v1/invoice-links/{invoiceId}/{bookingId}
func (h *Handler) Unlink(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /invoice-links/{invoiceId}/{bookingId}"

	invoiceID, err := handlers.PathInt64(r, "invoiceId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	invoice, err := h.service.Unlink(r.Context(), invoiceID, bookingID)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Booking unlinked: invoice_id=%d, booking_id=%d", route, invoiceID, bookingID)
	handlers.RespondJSON(w, http.StatusOK, invoice)
}

// Recalculate POST /api/v1/invoice-links/{invoiceId}/recalc
func (h *Handler) Recalculate(w http.ResponseWriter, r *http.Request) {
	const route = "POST /invoice-links/{invoiceId}/recalc"

	invoiceID, err := handlers.PathInt64(r, "invoiceId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	invoice, err := h.service.Recalculate(r.Context(), invoiceID)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Invoice recalculated: invoice_id=%d, final=%s", route, invoiceID, invoice.FinalAmount)
	handlers.RespondJSON(w, http.StatusOK, invoice)
}
