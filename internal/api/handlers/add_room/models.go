package add_room

import (
	bookingModels "github.com/m04kA/SMC-HotelService/internal/service/bookings/models"
	addRoom "github.com/m04kA/SMC-HotelService/internal/usecase/add_room"
)

// AddRoomRequest HTTP request model
type AddRoomRequest struct {
	RoomID int64 `json:"roomId" validate:"required,gt=0"`
}

// AddRoomResponse HTTP response model
type AddRoomResponse struct {
	Booking *bookingModels.BookingResponse     `json:"booking"`
	Lines   []bookingModels.UsageLineResponse `json:"lines"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *addRoom.Response) *AddRoomResponse {
	return &AddRoomResponse{
		Booking: bookingModels.FromDomainBooking(resp.Booking),
		Lines:   bookingModels.FromDomainLines(resp.Lines),
	}
}
