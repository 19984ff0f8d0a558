package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// CreateInvoiceRequest создание счёта с привязанными бронированиями
type CreateInvoiceRequest struct {
	Kind       string
	BookingIDs []int64
	Fee        decimal.Decimal
	Note       *string
	Draft      bool // счёт создаётся черновиком и выставляется отдельно
}

// PaymentRequest уведомление об оплате. PaymentRef уникален среди счетов;
// пустая ссылка заменяется сгенерированной.
type PaymentRequest struct {
	InvoiceID  int64
	PaymentRef string
	PaidAt     *time.Time
}

// InvoiceResponse счёт с привязанными бронированиями
type InvoiceResponse struct {
	ID              int64           `json:"id"`
	Kind            string          `json:"kind"`
	Status          string          `json:"status"`
	Total           decimal.Decimal `json:"total"`
	Discount        decimal.Decimal `json:"discount"`
	Fee             decimal.Decimal `json:"fee"`
	DepositDeducted decimal.Decimal `json:"depositDeducted"`
	FinalAmount     decimal.Decimal `json:"finalAmount"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	PaymentRef      *string         `json:"paymentRef,omitempty"`
	Note            *string         `json:"note,omitempty"`
	BookingIDs      []int64         `json:"bookingIds"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// PaymentResponse результат обработки оплаты
type PaymentResponse struct {
	Invoice *InvoiceResponse `json:"invoice"`
	// AlreadyPaid повторное уведомление: ничего не изменилось
	AlreadyPaid bool `json:"alreadyPaid"`
	// ConfirmedBookings бронирования, подтверждённые оплатой депозита
	ConfirmedBookings []int64 `json:"confirmedBookings"`
}

// FromDomainInvoice конвертирует domain модель в response
func FromDomainInvoice(inv *domain.Invoice, bookingIDs []int64) *InvoiceResponse {
	if bookingIDs == nil {
		bookingIDs = []int64{}
	}
	return &InvoiceResponse{
		ID:              inv.ID,
		Kind:            string(inv.Kind),
		Status:          string(inv.Status),
		Total:           inv.Total,
		Discount:        inv.Discount,
		Fee:             inv.Fee,
		DepositDeducted: inv.DepositDeducted,
		FinalAmount:     inv.FinalAmount,
		PaidAt:          inv.PaidAt,
		PaymentRef:      inv.PaymentRef,
		Note:            inv.Note,
		BookingIDs:      bookingIDs,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
}
