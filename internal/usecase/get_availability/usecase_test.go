package get_availability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/service/holds"
	"github.com/m04kA/SMC-HotelService/internal/testutil/harness"
	"github.com/m04kA/SMC-HotelService/internal/usecase/get_availability"
)

func TestGetAvailability_ByNight(t *testing.T) {
	h := harness.New(t, time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC))
	hotel := h.StandardHotel()
	ctx := context.Background()

	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)

	holdIn, holdOut := h.Stay(2025, time.November, 14, 15)
	_, err := h.Holds.Create(ctx, &holds.CreateHoldRequest{RoomTypeID: hotel.RoomType.ID, Quantity: 1, From: holdIn, To: holdOut})
	require.NoError(t, err)

	resp, err := h.GetAvailability.Execute(ctx, &get_availability.Request{
		RoomTypeID: hotel.RoomType.ID,
		From:       h.At(2025, time.November, 12, 0, 0),
		To:         h.At(2025, time.November, 16, 0, 0),
		ByNight:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, h.At(2025, time.November, 12, 14, 0), resp.From, "dates expand to the standard check-in")
	assert.Equal(t, h.At(2025, time.November, 16, 12, 0), resp.To)
	assert.Equal(t, 3, resp.TotalRooms)
	assert.Equal(t, 1, resp.Occupied)
	assert.Equal(t, 1, resp.Held)
	assert.Equal(t, 1, resp.Available)

	expected := []int{3, 2, 1, 3}
	require.Len(t, resp.Nights, len(expected))
	for i, night := range resp.Nights {
		assert.Equal(t, h.At(2025, time.November, 12+i, 0, 0), night.Date)
		assert.Equal(t, expected[i], night.Available, "night of %s", night.Date.Format(time.DateOnly))
	}
}

func TestGetAvailability_ExactWindow(t *testing.T) {
	h := harness.New(t, time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC))
	hotel := h.StandardHotel()

	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID, hotel.Rooms[1].ID)

	// Окно заканчивается ровно в момент заезда
	resp, err := h.GetAvailability.Execute(context.Background(), &get_availability.Request{
		RoomTypeID: hotel.RoomType.ID,
		From:       h.At(2025, time.November, 13, 8, 0),
		To:         checkIn,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Available)
	assert.Empty(t, resp.Nights)

	resp, err = h.GetAvailability.Execute(context.Background(), &get_availability.Request{
		RoomTypeID: hotel.RoomType.ID,
		From:       h.At(2025, time.November, 14, 8, 0),
		To:         h.At(2025, time.November, 14, 10, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Occupied)
	assert.Equal(t, 1, resp.Available)
}

func TestGetAvailability_Validation(t *testing.T) {
	h := harness.New(t, time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC))
	hotel := h.StandardHotel()
	from := h.At(2025, time.November, 13, 0, 0)

	tests := []struct {
		name     string
		req      *get_availability.Request
		expected error
	}{
		{"zero room type", &get_availability.Request{From: from, To: from.AddDate(0, 0, 1)}, get_availability.ErrInvalidInput},
		{"missing dates", &get_availability.Request{RoomTypeID: hotel.RoomType.ID}, get_availability.ErrInvalidInput},
		{"reversed", &get_availability.Request{RoomTypeID: hotel.RoomType.ID, From: from, To: from.AddDate(0, 0, -1)}, get_availability.ErrInvalidInput},
		{"too many nights", &get_availability.Request{RoomTypeID: hotel.RoomType.ID, From: from, To: from.AddDate(0, 0, domain.MaxCalendarDays+1), ByNight: true}, get_availability.ErrRangeTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.GetAvailability.Execute(context.Background(), tt.req)
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
			assert.True(t, errors.Is(err, domain.ErrValidation))
		})
	}
}
