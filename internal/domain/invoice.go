package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceKind DEPOSIT invoices collect deposits, FINAL invoices settle the stay
type InvoiceKind string

const (
	InvoiceDeposit InvoiceKind = "deposit"
	InvoiceFinal   InvoiceKind = "final"
)

// InvoiceStatus статус счёта
type InvoiceStatus string

const (
	InvoiceDraft  InvoiceStatus = "draft"
	InvoiceIssued InvoiceStatus = "issued"
	InvoicePaid   InvoiceStatus = "paid"
	InvoiceVoid   InvoiceStatus = "void"
)

// ParseInvoiceKind
func ParseInvoiceKind(s string) (InvoiceKind, bool) {
	switch k := InvoiceKind(s); k {
	case InvoiceDeposit, InvoiceFinal:
		return k, true
	}
	return "", false
}

// Invoice счёт, покрывающий одно или несколько бронирований
type Invoice struct {
	ID              int64
	Kind            InvoiceKind
	Status          InvoiceStatus
	Total           decimal.Decimal
	Discount        decimal.Decimal
	Fee             decimal.Decimal
	DepositDeducted decimal.Decimal
	FinalAmount     decimal.Decimal
	PaidAt          *time.Time
	PaymentRef      *string
	Note            *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsFrozen оплаченный или аннулированный счёт не пересчитывается и не меняет связи
func (i *Invoice) IsFrozen() bool {
	return i.Status == InvoicePaid || i.Status == InvoiceVoid
}

func (i *Invoice) IsPaid() bool {
	return i.Status == InvoicePaid
}

// InvoiceLink связь счёта с бронированием
type InvoiceLink struct {
	InvoiceID int64
	BookingID int64
	CreatedAt time.Time
}

// InvoiceTotals результат пересчёта счёта
type InvoiceTotals struct {
	Total           decimal.Decimal
	Discount        decimal.Decimal
	DepositDeducted decimal.Decimal
	FinalAmount     decimal.Decimal
}

// ComputeInvoiceTotals
//
// DEPOSIT: total = Σ depositRequired, payable = total + fee.
// FINAL: total = Σ gross, payable = max(0, total - discount + fee - Σ depositPaid).
func ComputeInvoiceTotals(kind InvoiceKind, fee decimal.Decimal, bookings []*Booking) InvoiceTotals {
	var t InvoiceTotals
	for _, b := range bookings {
		if b.Status.IsInactive() {
			continue
		}
		switch kind {
		case InvoiceDeposit:
			t.Total = t.Total.Add(b.DepositRequired)
		case InvoiceFinal:
			t.Total = t.Total.Add(b.GrossTotal())
			t.Discount = t.Discount.Add(b.DiscountTotal)
			t.DepositDeducted = t.DepositDeducted.Add(b.DepositPaid)
		}
	}
	t.FinalAmount = t.Total.Sub(t.Discount).Add(fee).Sub(t.DepositDeducted)
	if t.FinalAmount.IsNegative() {
		t.FinalAmount = decimal.Zero
	}
	return t
}

// ApplyTotals
func (i *Invoice) ApplyTotals(t InvoiceTotals) {
	i.Total = t.Total
	i.Discount = t.Discount
	i.DepositDeducted = t.DepositDeducted
	i.FinalAmount = t.FinalAmount
}
