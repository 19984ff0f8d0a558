package adjust_checkout

import (
	bookingModels "github.com/m04kA/SMC-HotelService/internal/service/bookings/models"
	adjustCheckOut "github.com/m04kA/SMC-HotelService/internal/usecase/adjust_checkout"
)

// AdjustCheckOutRequest HTTP request model. Дата без времени дополняется стандартным часом.
type AdjustCheckOutRequest struct {
	CheckOut string `json:"checkOut" validate:"required"`
}

// AdjustCheckOutResponse HTTP response model
type AdjustCheckOutResponse struct {
	Booking      *bookingModels.BookingResponse `json:"booking"`
	AddedNights  int                            `json:"addedNights"`
	RemovedLines int                            `json:"removedLines"`
	ShiftedLines int                            `json:"shiftedLines"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *adjustCheckOut.Response) *AdjustCheckOutResponse {
	return &AdjustCheckOutResponse{
		Booking:      bookingModels.FromDomainBooking(resp.Booking),
		AddedNights:  resp.AddedNights,
		RemovedLines: resp.RemovedLines,
		ShiftedLines: resp.ShiftedLines,
	}
}
