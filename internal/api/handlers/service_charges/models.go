package service_charges

import (
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/internal/domain"
	bookingModels "github.com/m04kA/SMC-HotelService/internal/service/bookings/models"
	"github.com/m04kA/SMC-HotelService/internal/service/charges"
)

// AddChargeRequest HTTP request model. Без lineNo услуга ложится на последнюю активную строку комнаты.
type AddChargeRequest struct {
	RoomID    int64  `json:"roomId" validate:"required,gt=0"`
	LineNo    *int   `json:"lineNo,omitempty" validate:"omitempty,gt=0"`
	ServiceID int64  `json:"serviceId" validate:"required,gt=0"`
	Quantity  int    `json:"quantity" validate:"required,gt=0,lte=1000"`
	Origin    string `json:"origin,omitempty" validate:"omitempty,oneof=staff auto chatbot"`
}

// UpdateChargeRequest HTTP request model
type UpdateChargeRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0,lte=1000"`
}

// ChargeResponse HTTP response model
type ChargeResponse struct {
	Charge  *bookingModels.ChargeResponse  `json:"charge"`
	Booking *bookingModels.BookingResponse `json:"booking"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *AddChargeRequest) ToServiceRequest(bookingID int64) (*charges.AddChargeRequest, error) {
	req := &charges.AddChargeRequest{
		BookingID: bookingID,
		RoomID:    r.RoomID,
		LineNo:    r.LineNo,
		ServiceID: r.ServiceID,
		Quantity:  r.Quantity,
	}
	if r.Origin != "" {
		origin, ok := domain.ParseChargeOrigin(r.Origin)
		if !ok {
			return nil, fmt.Errorf("%w: unknown origin %q", handlers.ErrBadRequest, r.Origin)
		}
		req.Origin = origin
	}
	return req, nil
}

// chargeKeyFromPath ключ начисления из пути /services/{roomId}/{lineNo}/{serviceId}/{chargeNo}
func chargeKeyFromPath(r *http.Request) (domain.ChargeKey, error) {
	var key domain.ChargeKey
	var err error

	if key.BookingID, err = handlers.PathInt64(r, "bookingId"); err != nil {
		return key, err
	}
	if key.RoomID, err = handlers.PathInt64(r, "roomId"); err != nil {
		return key, err
	}
	if key.LineNo, err = handlers.PathInt(r, "lineNo"); err != nil {
		return key, err
	}
	if key.ServiceID, err = handlers.PathInt64(r, "serviceId"); err != nil {
		return key, err
	}
	if key.ChargeNo, err = handlers.PathInt(r, "chargeNo"); err != nil {
		return key, err
	}
	return key, nil
}

// FromServiceResult конвертирует результат сервиса в HTTP response
func FromServiceResult(res *charges.Result) *ChargeResponse {
	return &ChargeResponse{
		Charge:  bookingModels.FromDomainCharge(res.Charge),
		Booking: bookingModels.FromDomainBooking(res.Booking),
	}
}
