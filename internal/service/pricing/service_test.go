package pricing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/service/pricing"
	"github.com/m04kA/SMC-HotelService/internal/testutil/harness"
)

func setup(t *testing.T) (*harness.Harness, *harness.Hotel) {
	h := harness.New(t, time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC))
	return h, h.StandardHotel()
}

func TestResolveForDate(t *testing.T) {
	h, hotel := setup(t)
	ctx := context.Background()
	special := h.Store.AddSpecialPrice(hotel.RoomType.ID, domain.RentalModeNight, 800000,
		h.At(2025, time.December, 24, 0, 0), h.At(2025, time.December, 26, 0, 0))

	price, err := h.Pricing.ResolveForDate(ctx, hotel.RoomType.ID, domain.RentalModeNight, h.At(2025, time.December, 25, 0, 0))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(800000).Equal(price.UnitPrice))
	assert.Equal(t, domain.PeriodSpecial, price.PeriodKind)
	assert.Equal(t, special.Period.ID, price.PeriodID)
	assert.Equal(t, h.At(2025, time.December, 25, 14, 0), price.At, "night price is taken at the standard check-in")

	// Ночь 26-го начинается в 14:00, когда период уже закончился
	price, err = h.Pricing.ResolveForDate(ctx, hotel.RoomType.ID, domain.RentalModeNight, h.At(2025, time.December, 26, 0, 0))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500000).Equal(price.UnitPrice))
	assert.Equal(t, domain.PeriodBase, price.PeriodKind)
}

func TestResolvePrice_LatestSpecialWins(t *testing.T) {
	h, hotel := setup(t)
	ctx := context.Background()
	h.Store.AddSpecialPrice(hotel.RoomType.ID, domain.RentalModeNight, 800000,
		h.At(2025, time.December, 20, 0, 0), h.At(2025, time.December, 31, 0, 0))
	h.Store.AddSpecialPrice(hotel.RoomType.ID, domain.RentalModeNight, 950000,
		h.At(2025, time.December, 24, 0, 0), h.At(2025, time.December, 26, 0, 0))

	price, err := h.Pricing.ResolvePrice(ctx, hotel.RoomType.ID, domain.RentalModeNight, h.At(2025, time.December, 25, 14, 0))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(950000).Equal(price.UnitPrice))

	price, err = h.Pricing.ResolvePrice(ctx, hotel.RoomType.ID, domain.RentalModeNight, h.At(2025, time.December, 27, 14, 0))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(800000).Equal(price.UnitPrice))
}

func TestResolvePrice_NothingConfigured(t *testing.T) {
	h, _ := setup(t)
	bare := h.Store.AddRoomType("Suite")

	_, err := h.Pricing.ResolvePrice(context.Background(), bare.ID, domain.RentalModeNight, h.At(2025, time.November, 13, 14, 0))
	assert.True(t, errors.Is(err, pricing.ErrNoPriceConfigured))
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestCalendar(t *testing.T) {
	h, hotel := setup(t)
	ctx := context.Background()
	h.Store.AddSpecialPrice(hotel.RoomType.ID, domain.RentalModeNight, 800000,
		h.At(2025, time.December, 24, 0, 0), h.At(2025, time.December, 26, 0, 0))

	calendar, err := h.Pricing.Calendar(ctx, hotel.RoomType.ID, domain.RentalModeNight,
		h.At(2025, time.December, 23, 0, 0), h.At(2025, time.December, 27, 0, 0))
	require.NoError(t, err)
	require.Len(t, calendar.Days, 4)

	expected := []int64{500000, 800000, 800000, 500000}
	for i, day := range calendar.Days {
		assert.Equal(t, h.At(2025, time.December, 23+i, 0, 0), day.Date)
		assert.True(t, decimal.NewFromInt(expected[i]).Equal(day.Price.UnitPrice), "day %d: %s", i, day.Price.UnitPrice)
	}
}

func TestCalendar_Errors(t *testing.T) {
	h, hotel := setup(t)
	ctx := context.Background()
	from := h.At(2025, time.December, 1, 0, 0)

	_, err := h.Pricing.Calendar(ctx, hotel.RoomType.ID, domain.RentalModeNight, from, from)
	assert.True(t, errors.Is(err, pricing.ErrInvalidInput))

	_, err = h.Pricing.Calendar(ctx, hotel.RoomType.ID, domain.RentalModeNight, from, from.AddDate(0, 0, domain.MaxCalendarDays+2))
	assert.True(t, errors.Is(err, pricing.ErrInvalidInput))

	_, err = h.Pricing.Calendar(ctx, 999, domain.RentalModeNight, from, from.AddDate(0, 0, 1))
	assert.True(t, errors.Is(err, pricing.ErrRoomTypeNotFound))
}
