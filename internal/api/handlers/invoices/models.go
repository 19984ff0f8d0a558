package invoices

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelService/internal/service/invoices/models"
)

// CreateInvoiceRequest HTTP request model
type CreateInvoiceRequest struct {
	Kind       string           `json:"kind" validate:"required,oneof=deposit final"`
	BookingIDs []int64          `json:"bookingIds" validate:"required,min=1,dive,gt=0"`
	Fee        *decimal.Decimal `json:"fee,omitempty"`
	Note       *string          `json:"note,omitempty" validate:"omitempty,max=500"`
	Draft      bool             `json:"draft,omitempty"`
}

// PaymentRequest HTTP request model. Пустой paymentRef заменяется сгенерированным.
type PaymentRequest struct {
	PaymentRef string     `json:"paymentRef" validate:"max=128"`
	PaidAt     *time.Time `json:"paidAt,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateInvoiceRequest) ToServiceRequest() *models.CreateInvoiceRequest {
	fee := decimal.Zero
	if r.Fee != nil {
		fee = *r.Fee
	}
	return &models.CreateInvoiceRequest{
		Kind:       r.Kind,
		BookingIDs: r.BookingIDs,
		Fee:        fee,
		Note:       r.Note,
		Draft:      r.Draft,
	}
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *PaymentRequest) ToServiceRequest(invoiceID int64) *models.PaymentRequest {
	return &models.PaymentRequest{
		InvoiceID:  invoiceID,
		PaymentRef: r.PaymentRef,
		PaidAt:     r.PaidAt,
	}
}
