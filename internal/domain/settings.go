package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// HotelSettings runtime hotel policy. Stored as a single row in hotel_settings;
// Location and MoneyScale come from the config file only.
type HotelSettings struct {
	DepositRate           decimal.Decimal
	StandardCheckIn       types.TimeString
	StandardCheckOut      types.TimeString
	EarlyCheckInGrace     types.TimeString
	EarliestEarlyCheckIn  types.TimeString
	EarlyCheckInServiceID *int64

	Location   *time.Location
	MoneyScale int32

	UpdatedAt time.Time
}

// NightPriceInstant момент, в который оценивается цена ночи: дата ночи + стандартное время заезда
func (s *HotelSettings) NightPriceInstant(night time.Time) time.Time {
	return s.StandardCheckIn.On(night.In(s.Location))
}

// HasEarlyCheckInService
func (s *HotelSettings) HasEarlyCheckInService() bool {
	return s.EarlyCheckInServiceID != nil && *s.EarlyCheckInServiceID > 0
}
