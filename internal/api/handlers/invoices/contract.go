package invoices

import (
	"context"

	"github.com/m04kA/SMC-HotelService/internal/service/invoices/models"
)

type InvoiceService interface {
	Create(ctx context.Context, req *models.CreateInvoiceRequest) (*models.InvoiceResponse, error)
	Get(ctx context.Context, invoiceID int64) (*models.InvoiceResponse, error)
	Issue(ctx context.Context, invoiceID int64) (*models.InvoiceResponse, error)
	Void(ctx context.Context, invoiceID int64) (*models.InvoiceResponse, error)
	Pay(ctx context.Context, req *models.PaymentRequest) (*models.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
