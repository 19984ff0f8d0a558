package prices

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/service/pricing"
)

// Параметры query: короткие имена LP_MA (тип комнаты) и HT_MA (режим аренды)
// поддерживаются наравне с roomTypeId и rentalMode.
var (
	roomTypeParams   = []string{"roomTypeId", "LP_MA"}
	rentalModeParams = []string{"rentalMode", "HT_MA"}
)

// PriceResponse HTTP response model
type PriceResponse struct {
	RoomTypeID int64           `json:"roomTypeId"`
	RentalMode string          `json:"rentalMode"`
	Date       string          `json:"date,omitempty"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	PeriodID   int64           `json:"periodId"`
	PeriodKind string          `json:"periodKind"`
	PeriodName string          `json:"periodName,omitempty"`
	StartsAt   *time.Time      `json:"startsAt,omitempty"`
	EndsAt     *time.Time      `json:"endsAt,omitempty"`
}

// CalendarResponse HTTP response model
type CalendarResponse struct {
	RoomTypeID int64           `json:"roomTypeId"`
	RentalMode string          `json:"rentalMode"`
	From       string          `json:"from"`
	To         string          `json:"to"`
	Days       []PriceResponse `json:"days"`
}

type priceQuery struct {
	roomTypeID int64
	mode       domain.RentalMode
}

func parsePriceQuery(query url.Values) (*priceQuery, error) {
	rawType := firstOf(query, roomTypeParams)
	roomTypeID, err := strconv.ParseInt(rawType, 10, 64)
	if err != nil || roomTypeID <= 0 {
		return nil, fmt.Errorf("%w: invalid roomTypeId %q", handlers.ErrBadRequest, rawType)
	}

	rawMode := strings.ToLower(firstOf(query, rentalModeParams))
	mode, ok := domain.ParseRentalMode(rawMode)
	if !ok {
		return nil, fmt.Errorf("%w: invalid rentalMode %q, expected night or hour", handlers.ErrBadRequest, rawMode)
	}

	return &priceQuery{roomTypeID: roomTypeID, mode: mode}, nil
}

func parseDate(query url.Values, name string, loc *time.Location) (time.Time, error) {
	raw := query.Get(name)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", handlers.ErrBadRequest, name)
	}
	t, err := time.ParseInLocation(domain.DateFormat, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid %s %q, expected YYYY-MM-DD", handlers.ErrBadRequest, name, raw)
	}
	return t, nil
}

func firstOf(query url.Values, names []string) string {
	for _, n := range names {
		if v := strings.TrimSpace(query.Get(n)); v != "" {
			return v
		}
	}
	return ""
}

// FromDomainPrice конвертирует разрешённую цену в response
func FromDomainPrice(p *domain.ResolvedPrice, date time.Time) PriceResponse {
	return PriceResponse{
		RoomTypeID: p.RoomTypeID,
		RentalMode: string(p.RentalMode),
		Date:       date.Format(domain.DateFormat),
		UnitPrice:  p.UnitPrice,
		PeriodID:   p.PeriodID,
		PeriodKind: string(p.PeriodKind),
		PeriodName: p.PeriodName,
		StartsAt:   p.StartsAt,
		EndsAt:     p.EndsAt,
	}
}

// FromCalendar конвертирует календарь цен в response
func FromCalendar(c *pricing.Calendar) *CalendarResponse {
	resp := &CalendarResponse{
		RoomTypeID: c.RoomTypeID,
		RentalMode: string(c.RentalMode),
		From:       c.From.Format(domain.DateFormat),
		To:         c.To.Format(domain.DateFormat),
		Days:       make([]PriceResponse, 0, len(c.Days)),
	}
	for _, d := range c.Days {
		resp.Days = append(resp.Days, FromDomainPrice(d.Price, d.Date))
	}
	return resp
}
