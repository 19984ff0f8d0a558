package adjust_checkin

import (
	bookingModels "github.com/m04kA/SMC-HotelService/internal/service/bookings/models"
	adjustCheckIn "github.com/m04kA/SMC-HotelService/internal/usecase/adjust_checkin"
)

// AdjustCheckInRequest HTTP request model. Дата без времени дополняется стандартным часом.
type AdjustCheckInRequest struct {
	CheckIn string `json:"checkIn" validate:"required"`
}

// AdjustCheckInResponse HTTP response model
type AdjustCheckInResponse struct {
	Booking      *bookingModels.BookingResponse `json:"booking"`
	AddedNights  int                            `json:"addedNights"`
	RemovedLines int                            `json:"removedLines"`
	ShiftedLines int                            `json:"shiftedLines"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *adjustCheckIn.Response) *AdjustCheckInResponse {
	return &AdjustCheckInResponse{
		Booking:      bookingModels.FromDomainBooking(resp.Booking),
		AddedNights:  resp.AddedNights,
		RemovedLines: resp.RemovedLines,
		ShiftedLines: resp.ShiftedLines,
	}
}
