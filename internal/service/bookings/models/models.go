package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	GuestID         *int64     `json:"guestId,omitempty"`
	Status          *string    `json:"status,omitempty"`
	From            *time.Time `json:"from,omitempty"` // бронирования, выезжающие после From
	To              *time.Time `json:"to,omitempty"`   // бронирования, заезжающие до To
	IncludeInactive bool       `json:"includeInactive,omitempty"`
	Limit           uint64     `json:"limit,omitempty"`
	Offset          uint64     `json:"offset,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		GuestID:         r.GuestID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
		Limit:           r.Limit,
		Offset:          r.Offset,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
		// Явный запрос отменённых включает неактивные
		if status.IsInactive() {
			filter.IncludeInactive = true
		}
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования и его итогами
type BookingResponse struct {
	ID              int64   `json:"id"`
	GuestID         int64   `json:"guestId"`
	GuestName       string  `json:"guestName"`
	RentalMode      string  `json:"rentalMode"`
	Status          string  `json:"status"`
	PlannedCheckIn  string  `json:"plannedCheckIn"`
	PlannedCheckOut string  `json:"plannedCheckOut"`
	ActualCheckIn   *string `json:"actualCheckIn,omitempty"`
	ActualCheckOut  *string `json:"actualCheckOut,omitempty"`

	RoomTotal       decimal.Decimal `json:"roomTotal"`
	ServiceTotal    decimal.Decimal `json:"serviceTotal"`
	DiscountTotal   decimal.Decimal `json:"discountTotal"`
	ExpectedTotal   decimal.Decimal `json:"expectedTotal"`
	DepositRate     decimal.Decimal `json:"depositRate"`
	DepositRequired decimal.Decimal `json:"depositRequired"`
	DepositPaid     decimal.Decimal `json:"depositPaid"`

	Note               *string `json:"note,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UsageLineResponse строка использования
type UsageLineResponse struct {
	RoomID    int64           `json:"roomId"`
	LineNo    int             `json:"lineNo"`
	Unit      string          `json:"unit"`
	NightDate *string         `json:"nightDate,omitempty"`
	StartAt   *string         `json:"startAt,omitempty"`
	EndAt     *string         `json:"endAt,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	Status    string          `json:"status"`
}

// ChargeResponse начисление за услугу
type ChargeResponse struct {
	RoomID      int64           `json:"roomId"`
	LineNo      int             `json:"lineNo"`
	ServiceID   int64           `json:"serviceId"`
	ChargeNo    int             `json:"chargeNo"`
	ServiceName string          `json:"serviceName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
	Origin      string          `json:"origin"`
}

// PromotionResponse применённая акция
type PromotionResponse struct {
	PromotionID int64           `json:"promotionId"`
	Code        string          `json:"code"`
	Discount    decimal.Decimal `json:"discount"`
	AppliedAt   time.Time       `json:"appliedAt"`
}

// InvoiceSummary счёт, покрывающий бронирование
type InvoiceSummary struct {
	ID          int64           `json:"id"`
	Kind        string          `json:"kind"`
	Status      string          `json:"status"`
	FinalAmount decimal.Decimal `json:"finalAmount"`
}

// BookingDetailsResponse бронирование со строками, начислениями, акцией и счетами
type BookingDetailsResponse struct {
	BookingResponse
	Lines     []UsageLineResponse `json:"lines"`
	Charges   []ChargeResponse    `json:"charges"`
	Promotion *PromotionResponse  `json:"promotion,omitempty"`
	Invoices  []InvoiceSummary    `json:"invoices"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                 b.ID,
		GuestID:            b.GuestID,
		GuestName:          b.GuestName,
		RentalMode:         string(b.RentalMode),
		Status:             string(b.Status),
		PlannedCheckIn:     b.PlannedCheckIn.Format(time.RFC3339),
		PlannedCheckOut:    b.PlannedCheckOut.Format(time.RFC3339),
		ActualCheckIn:      formatTime(b.ActualCheckIn),
		ActualCheckOut:     formatTime(b.ActualCheckOut),
		RoomTotal:          b.RoomTotal,
		ServiceTotal:       b.ServiceTotal,
		DiscountTotal:      b.DiscountTotal,
		ExpectedTotal:      b.ExpectedTotal,
		DepositRate:        b.DepositRate,
		DepositRequired:    b.DepositRequired,
		DepositPaid:        b.DepositPaid,
		Note:               b.Note,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainLines конвертирует строки использования
func FromDomainLines(lines []*domain.UsageLine) []UsageLineResponse {
	result := make([]UsageLineResponse, 0, len(lines))
	for _, l := range lines {
		line := UsageLineResponse{
			RoomID:    l.RoomID,
			LineNo:    l.LineNo,
			Unit:      string(l.Unit),
			StartAt:   formatTime(l.StartAt),
			EndAt:     formatTime(l.EndAt),
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
			Status:    string(l.Status),
		}
		if l.NightDate != nil {
			d := l.NightDate.Format(domain.DateFormat)
			line.NightDate = &d
		}
		result = append(result, line)
	}
	return result
}

// FromDomainCharges конвертирует начисления
func FromDomainCharges(charges []*domain.ServiceCharge) []ChargeResponse {
	result := make([]ChargeResponse, 0, len(charges))
	for _, c := range charges {
		result = append(result, *FromDomainCharge(c))
	}
	return result
}

// FromDomainCharge конвертирует одно начисление
func FromDomainCharge(c *domain.ServiceCharge) *ChargeResponse {
	return &ChargeResponse{
		RoomID:      c.RoomID,
		LineNo:      c.LineNo,
		ServiceID:   c.ServiceID,
		ChargeNo:    c.ChargeNo,
		ServiceName: c.ServiceName,
		Quantity:    c.Quantity,
		UnitPrice:   c.UnitPrice,
		Total:       c.Total,
		Status:      string(c.Status),
		Origin:      string(c.Origin),
	}
}

// FromDomainApplication конвертирует применённую акцию
func FromDomainApplication(a *domain.PromotionApplication) *PromotionResponse {
	if a == nil {
		return nil
	}
	return &PromotionResponse{
		PromotionID: a.PromotionID,
		Code:        a.PromotionCode,
		Discount:    a.Discount,
		AppliedAt:   a.AppliedAt,
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s, ok := domain.ParseBookingStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
