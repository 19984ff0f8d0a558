package get_availability

import (
	"fmt"
	"net/url"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/internal/domain"
	getAvailability "github.com/m04kA/SMC-HotelService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	RoomTypeID int64           `json:"roomTypeId"`
	From       time.Time       `json:"from"`
	To         time.Time       `json:"to"`
	TotalRooms int             `json:"totalRooms"`
	Occupied   int             `json:"occupied"`
	Held       int             `json:"held"`
	Available  int             `json:"available"`
	Nights     []NightResponse `json:"nights,omitempty"`
}

// NightResponse свободная ёмкость на одну ночь
type NightResponse struct {
	Date      string `json:"date"`
	Available int    `json:"available"`
}

// ToUseCaseRequest собирает запрос из query: from и to обязательны.
// Если обе границы - даты без времени, ответ разбивается по ночам.
func ToUseCaseRequest(roomTypeID int64, query url.Values, loc *time.Location) (*getAvailability.Request, error) {
	rawFrom, rawTo := query.Get("from"), query.Get("to")
	if rawFrom == "" || rawTo == "" {
		return nil, fmt.Errorf("%w: from and to are required", handlers.ErrBadRequest)
	}

	from, fromDateOnly, err := handlers.ParseDateTime(rawFrom, loc)
	if err != nil {
		return nil, err
	}
	to, toDateOnly, err := handlers.ParseDateTime(rawTo, loc)
	if err != nil {
		return nil, err
	}
	if fromDateOnly != toDateOnly {
		return nil, fmt.Errorf("%w: from and to must both be dates or both be date-times", handlers.ErrBadRequest)
	}

	return &getAvailability.Request{
		RoomTypeID: roomTypeID,
		From:       from,
		To:         to,
		ByNight:    fromDateOnly,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	result := &AvailabilityResponse{
		RoomTypeID: resp.RoomTypeID,
		From:       resp.From,
		To:         resp.To,
		TotalRooms: resp.TotalRooms,
		Occupied:   resp.Occupied,
		Held:       resp.Held,
		Available:  resp.Available,
	}
	for _, n := range resp.Nights {
		result.Nights = append(result.Nights, NightResponse{
			Date:      n.Date.Format(domain.DateFormat),
			Available: n.Available,
		})
	}
	return result
}
