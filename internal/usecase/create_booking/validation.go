package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (domain.RentalMode, error) {
	if req.GuestID <= 0 {
		return "", fmt.Errorf("%w: guestId must be positive", ErrInvalidInput)
	}

	mode, ok := domain.ParseRentalMode(req.RentalMode)
	if !ok {
		return "", fmt.Errorf("%w: rentalMode must be night or hour", ErrInvalidInput)
	}

	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return "", fmt.Errorf("%w: checkIn and checkOut are required", ErrInvalidStay)
	}

	if !req.CheckIn.Before(req.CheckOut) {
		return "", fmt.Errorf("%w: checkIn must be before checkOut", ErrInvalidStay)
	}

	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return "", fmt.Errorf("%w: note must not exceed %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	seen := make(map[int64]struct{}, len(req.RoomIDs))
	for _, id := range req.RoomIDs {
		if id <= 0 {
			return "", fmt.Errorf("%w: room ids must be positive", ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return "", fmt.Errorf("%w: room %d is listed twice", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	return mode, nil
}

// validateNights проверяет, что посуточное проживание занимает от 1 до MaxStayNights ночей
func validateNights(checkIn, checkOut time.Time, loc *time.Location) error {
	nights := len(domain.Nights(checkIn, checkOut, loc))
	if nights < 1 {
		return fmt.Errorf("%w: a nightly stay must span at least one night", ErrInvalidStay)
	}
	if nights > domain.MaxStayNights {
		return fmt.Errorf("%w: stay must not exceed %d nights", ErrInvalidStay, domain.MaxStayNights)
	}
	return nil
}

// validateHold проверяет, что удержание активно и покрывает окно и комнаты бронирования
func validateHold(hold *domain.ProvisionalHold, checkIn, checkOut time.Time, rooms []*domain.Room) error {
	if hold.Status == domain.HoldReleased {
		return domain.NewConflictError(domain.CodeIllegalTransition, ErrHoldMismatch, nil,
			"hold %d is released", hold.ID)
	}

	if checkIn.Before(hold.From) || checkOut.After(hold.To) {
		return domain.NewConflictError(domain.CodeNoCapacity, ErrHoldMismatch, nil,
			"hold %d covers %s - %s only", hold.ID,
			hold.From.Format(domain.DateTimeFormat), hold.To.Format(domain.DateTimeFormat))
	}

	matching := 0
	for _, r := range rooms {
		if r.RoomTypeID == hold.RoomTypeID {
			matching++
		}
	}
	if matching > hold.Quantity {
		return domain.NewConflictError(domain.CodeNoCapacity, ErrHoldMismatch, nil,
			"hold %d reserves %d rooms, %d requested", hold.ID, hold.Quantity, matching)
	}

	return nil
}
