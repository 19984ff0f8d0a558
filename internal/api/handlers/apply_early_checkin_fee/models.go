package apply_early_checkin_fee

import (
	"github.com/shopspring/decimal"

	bookingModels "github.com/m04kA/SMC-HotelService/internal/service/bookings/models"
	earlyFee "github.com/m04kA/SMC-HotelService/internal/usecase/apply_early_checkin_fee"
)

// EarlyCheckInFeeRequest HTTP request model; тело необязательно
type EarlyCheckInFeeRequest struct {
	ArrivedAt *string `json:"arrivedAt,omitempty"`
}

// EarlyCheckInFeeResponse HTTP response model
type EarlyCheckInFeeResponse struct {
	Booking    *bookingModels.BookingResponse `json:"booking"`
	HoursEarly int                            `json:"hoursEarly"`
	Fee        decimal.Decimal                `json:"fee"`
	Charges    []bookingModels.ChargeResponse `json:"charges"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *earlyFee.Response) *EarlyCheckInFeeResponse {
	return &EarlyCheckInFeeResponse{
		Booking:    bookingModels.FromDomainBooking(resp.Booking),
		HoursEarly: resp.HoursEarly,
		Fee:        resp.Fee,
		Charges:    bookingModels.FromDomainCharges(resp.Charges),
	}
}
