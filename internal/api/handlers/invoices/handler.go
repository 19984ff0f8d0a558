package invoices

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/internal/service/invoices/models"
)

type Handler struct {
	service InvoiceService
	logger  Logger
}

func NewHandler(service InvoiceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/invoices
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const route = "POST /invoices"

	var req CreateInvoiceRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	invoice, err := h.service.Create(r.Context(), req.ToServiceRequest())
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Invoice created: invoice_id=%d, kind=%s, status=%s, final=%s",
		route, invoice.ID, invoice.Kind, invoice.Status, invoice.FinalAmount)
	handlers.RespondJSON(w, http.StatusCreated, invoice)
}

// Get GET /api/v1/invoices/{invoiceId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, "GET /invoices/{id}", h.service.Get)
}

// Issue POST /api/v1/invoices/{invoiceId}/issue
func (h *Handler) Issue(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, "POST /invoices/{id}/issue", h.service.Issue)
}

// Void POST /api/v1/invoices/{invoiceId}/void
func (h *Handler) Void(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, "POST /invoices/{id}/void", h.service.Void)
}

// Pay POST /api/v1/invoices/{invoiceId}/payments
// Повторное уведомление об оплате возвращает 200 с alreadyPaid=true.
func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	const route = "POST /invoices/{id}/payments"

	invoiceID, err := handlers.PathInt64(r, "invoiceId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	var req PaymentRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeAndValidate(r, &req); err != nil {
			handlers.HandleError(w, h.logger, route, err)
			return
		}
	}

	result, err := h.service.Pay(r.Context(), req.ToServiceRequest(invoiceID))
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	if result.AlreadyPaid {
		h.logger.Info("%s - Duplicate payment ignored: invoice_id=%d", route, invoiceID)
	} else {
		h.logger.Info("%s - Invoice paid: invoice_id=%d, confirmed=%v", route, invoiceID, result.ConfirmedBookings)
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) byID(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	call func(ctx context.Context, invoiceID int64) (*models.InvoiceResponse, error),
) {
	invoiceID, err := handlers.PathInt64(r, "invoiceId")
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	invoice, err := call(r.Context(), invoiceID)
	if err != nil {
		handlers.HandleError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Success: invoice_id=%d, status=%s", route, invoice.ID, invoice.Status)
	handlers.RespondJSON(w, http.StatusOK, invoice)
}
