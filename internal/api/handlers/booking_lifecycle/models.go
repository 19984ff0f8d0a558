package booking_lifecycle

import (
	bookingModels "github.com/m04kA/SMC-HotelService/internal/service/bookings/models"
	"github.com/m04kA/SMC-HotelService/internal/service/lifecycle"
)

// CheckInRequest HTTP request model; без actualCheckIn заселение фиксируется текущим временем
type CheckInRequest struct {
	ActualCheckIn *string `json:"actualCheckIn,omitempty"`
}

// CancelRequest HTTP request model
type CancelRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// TransitionResponse HTTP response model
type TransitionResponse struct {
	Booking         *bookingModels.BookingResponse `json:"booking"`
	From            string                         `json:"from"`
	To              string                         `json:"to"`
	IssuedInvoiceID *int64                         `json:"issuedInvoiceId,omitempty"`
	CleaningTasks   int                            `json:"cleaningTasks,omitempty"`
}

// FromServiceResult конвертирует результат перехода в HTTP response
func FromServiceResult(res *lifecycle.Result) *TransitionResponse {
	return &TransitionResponse{
		Booking:         bookingModels.FromDomainBooking(res.Booking),
		From:            string(res.From),
		To:              string(res.To),
		IssuedInvoiceID: res.IssuedInvoiceID,
		CleaningTasks:   res.CleaningTasks,
	}
}
