package change_room

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}
	if req.FromRoomID <= 0 || req.ToRoomID <= 0 {
		return fmt.Errorf("%w: fromRoomId and toRoomId must be positive", ErrInvalidInput)
	}
	if req.FromRoomID == req.ToRoomID {
		return fmt.Errorf("%w: target room must differ from the current one", ErrInvalidInput)
	}
	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}
	return nil
}

// nightRange диапазон дат ночей запроса, пустые границы берутся из окна проживания
func nightRange(req *Request, booking *domain.Booking, settings *domain.HotelSettings) (from, to time.Time) {
	start, end := domain.EffectiveWindow(booking)
	from = domain.DateOf(start, settings.Location)
	to = domain.DateOf(end, settings.Location)
	if req.From != nil {
		from = domain.DateOf(*req.From, settings.Location)
	}
	if req.To != nil {
		to = domain.DateOf(*req.To, settings.Location)
	}
	return from, to
}

// movedWindow окно переносимых ночей [заезд первой ночи, выезд после последней).
// Крайние ночи проживания берут фактические границы бронирования.
func movedWindow(lines []*domain.UsageLine, booking *domain.Booking, settings *domain.HotelSettings) (from, to time.Time) {
	start, end := domain.EffectiveWindow(booking)
	first, last := *lines[0].NightDate, *lines[0].NightDate
	for _, l := range lines[1:] {
		if l.NightDate.Before(first) {
			first = *l.NightDate
		}
		if l.NightDate.After(last) {
			last = *l.NightDate
		}
	}

	from = settings.StandardCheckIn.On(first)
	if domain.SameDate(first, domain.DateOf(start, settings.Location)) {
		from = start
	}
	next := last.AddDate(0, 0, 1)
	to = settings.StandardCheckOut.On(next)
	if domain.SameDate(next, domain.DateOf(end, settings.Location)) {
		to = end
	}
	return from, to
}
