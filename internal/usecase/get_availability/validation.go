package get_availability

import (
	"fmt"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RoomTypeID <= 0 {
		return fmt.Errorf("%w: roomTypeId must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	if !req.From.Before(req.To) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	if req.ByNight && domain.DaysBetween(req.From, req.To) > domain.MaxCalendarDays {
		return fmt.Errorf("%w: at most %d nights", ErrRangeTooLong, domain.MaxCalendarDays)
	}

	return nil
}
