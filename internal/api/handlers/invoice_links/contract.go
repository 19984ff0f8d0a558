package invoice_links

import (
	"context"

	"github.com/m04kA/SMC-HotelService/internal/service/invoices/models"
)

type LinkService interface {
	Link(ctx context.Context, invoiceID, bookingID int64) (*models.InvoiceResponse, error)
	Unlink(ctx context.Context, invoiceID, bookingID int64) (*models.InvoiceResponse, error)
	Recalculate(ctx context.Context, invoiceID int64) (*models.InvoiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
