package holds

import (
	"time"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/service/holds"
)

// CreateHoldRequest HTTP request model. Даты без времени дополняются стандартными часами заезда и выезда.
type CreateHoldRequest struct {
	RoomTypeID int64  `json:"roomTypeId" validate:"required,gt=0"`
	Quantity   int    `json:"quantity" validate:"required,gt=0,lte=100"`
	From       string `json:"from" validate:"required"`
	To         string `json:"to" validate:"required"`
	InvoiceID  *int64 `json:"invoiceId,omitempty" validate:"omitempty,gt=0"`
}

// HoldResponse HTTP response model
type HoldResponse struct {
	ID         int64     `json:"id"`
	RoomTypeID int64     `json:"roomTypeId"`
	Quantity   int       `json:"quantity"`
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
	Status     string    `json:"status"`
	InvoiceID  *int64    `json:"invoiceId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateHoldRequest) ToServiceRequest(settings *domain.HotelSettings) (*holds.CreateHoldRequest, error) {
	from, err := handlers.ParseStayBoundary(r.From, settings, settings.StandardCheckIn)
	if err != nil {
		return nil, err
	}
	to, err := handlers.ParseStayBoundary(r.To, settings, settings.StandardCheckOut)
	if err != nil {
		return nil, err
	}

	return &holds.CreateHoldRequest{
		RoomTypeID: r.RoomTypeID,
		Quantity:   r.Quantity,
		From:       from,
		To:         to,
		InvoiceID:  r.InvoiceID,
	}, nil
}

// FromDomainHold конвертирует domain модель в response
func FromDomainHold(h *domain.ProvisionalHold) *HoldResponse {
	return &HoldResponse{
		ID:         h.ID,
		RoomTypeID: h.RoomTypeID,
		Quantity:   h.Quantity,
		From:       h.From,
		To:         h.To,
		Status:     string(h.Status),
		InvoiceID:  h.InvoiceID,
		CreatedAt:  h.CreatedAt,
		UpdatedAt:  h.UpdatedAt,
	}
}
