package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров:
// guestId, status, from, to, includeInactive, limit, offset
func ToServiceRequest(q url.Values, loc *time.Location) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if raw := q.Get("guestId"); raw != "" {
		guestID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || guestID <= 0 {
			return nil, fmt.Errorf("%w: invalid guestId %q", handlers.ErrBadRequest, raw)
		}
		req.GuestID = &guestID
	}

	if raw := q.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := q.Get("from"); raw != "" {
		from, _, err := handlers.ParseDateTime(raw, loc)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if raw := q.Get("to"); raw != "" {
		to, _, err := handlers.ParseDateTime(raw, loc)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	if raw := q.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid includeInactive value %q", handlers.ErrBadRequest, raw)
		}
		req.IncludeInactive = includeInactive
	}

	for name, dst := range map[string]*uint64{"limit": &req.Limit, "offset": &req.Offset} {
		if raw := q.Get(name); raw != "" {
			v, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid %s %q", handlers.ErrBadRequest, name, raw)
			}
			*dst = v
		}
	}

	return req, nil
}
