package change_room

import (
	"time"

	bookingModels "github.com/m04kA/SMC-HotelService/internal/service/bookings/models"
	changeRoom "github.com/m04kA/SMC-HotelService/internal/usecase/change_room"
)

// ChangeRoomRequest HTTP request model. From, To - необязательный диапазон дат ночей [from, to).
type ChangeRoomRequest struct {
	FromRoomID int64  `json:"fromRoomId" validate:"required,gt=0"`
	ToRoomID   int64  `json:"toRoomId" validate:"required,gt=0,nefield=FromRoomID"`
	From       string `json:"from,omitempty"`
	To         string `json:"to,omitempty"`
	Reprice    bool   `json:"reprice"`
}

// ChangeRoomResponse HTTP response model
type ChangeRoomResponse struct {
	Booking    *bookingModels.BookingResponse `json:"booking"`
	MovedLines int                            `json:"movedLines"`
	Repriced   bool                           `json:"repriced"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ChangeRoomRequest) ToUseCaseRequest(bookingID int64, from, to *time.Time) *changeRoom.Request {
	return &changeRoom.Request{
		BookingID:  bookingID,
		FromRoomID: r.FromRoomID,
		ToRoomID:   r.ToRoomID,
		From:       from,
		To:         to,
		Reprice:    r.Reprice,
	}
}
