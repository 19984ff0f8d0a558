package create_booking

import (
	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/internal/domain"
	bookingModels "github.com/m04kA/SMC-HotelService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-HotelService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	GuestID    int64   `json:"guestId" validate:"required,gt=0"`
	RentalMode string  `json:"rentalMode" validate:"required,oneof=night hour"`
	CheckIn    string  `json:"checkIn" validate:"required"`  // "2025-11-13" или RFC3339
	CheckOut   string  `json:"checkOut" validate:"required"` // "2025-11-15" или RFC3339
	RoomIDs    []int64 `json:"roomIds,omitempty" validate:"omitempty,dive,gt=0"`
	Note       *string `json:"note,omitempty" validate:"omitempty,max=500"`
	HoldID     *int64  `json:"holdId,omitempty" validate:"omitempty,gt=0"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking       *bookingModels.BookingResponse     `json:"booking"`
	Lines         []bookingModels.UsageLineResponse `json:"lines"`
	GuestDegraded bool                               `json:"guestDegraded,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Даты без времени дополняются стандартными часами заезда и выезда.
func (r *CreateBookingRequest) ToUseCaseRequest(settings *domain.HotelSettings, userID *int64) (*createBooking.Request, error) {
	checkIn, err := handlers.ParseStayBoundary(r.CheckIn, settings, settings.StandardCheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := handlers.ParseStayBoundary(r.CheckOut, settings, settings.StandardCheckOut)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		GuestID:    r.GuestID,
		RentalMode: r.RentalMode,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		RoomIDs:    r.RoomIDs,
		Note:       r.Note,
		HoldID:     r.HoldID,
		CreatedBy:  userID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking:       bookingModels.FromDomainBooking(resp.Booking),
		Lines:         bookingModels.FromDomainLines(resp.Lines),
		GuestDegraded: resp.GuestDegraded,
	}
}
