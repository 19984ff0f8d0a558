package change_room_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/service/charges"
	"github.com/m04kA/SMC-HotelService/internal/service/holds"
	"github.com/m04kA/SMC-HotelService/internal/testutil/harness"
	"github.com/m04kA/SMC-HotelService/internal/usecase/change_room"
	"github.com/m04kA/SMC-HotelService/internal/usecase/create_booking"
)

func setup(t *testing.T) (*harness.Harness, *harness.Hotel, *create_booking.Response) {
	h := harness.New(t, time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC))
	hotel := h.StandardHotel()

	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	return h, hotel, h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)
}

func TestChangeRoom_MovesLinesWithCharges(t *testing.T) {
	h, hotel, booking := setup(t)
	ctx := context.Background()
	breakfast := h.Store.AddService("BREAKFAST", 45000)

	_, err := h.Charges.Add(ctx, &charges.AddChargeRequest{
		BookingID: booking.Booking.ID,
		RoomID:    hotel.Rooms[0].ID,
		ServiceID: breakfast.ID,
		Quantity:  1,
	})
	require.NoError(t, err)

	resp, err := h.ChangeRoom.Execute(ctx, &change_room.Request{
		BookingID:  booking.Booking.ID,
		FromRoomID: hotel.Rooms[0].ID,
		ToRoomID:   hotel.Rooms[1].ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.MovedLines)

	lines := h.Store.ActiveLines(booking.Booking.ID)
	require.Len(t, lines, 2)
	for i, line := range lines {
		assert.Equal(t, hotel.Rooms[1].ID, line.RoomID)
		assert.Equal(t, i+1, line.LineNo)
	}

	moved := h.Store.ChargesOf(booking.Booking.ID)
	require.Len(t, moved, 1)
	assert.Equal(t, hotel.Rooms[1].ID, moved[0].RoomID)
	assert.Equal(t, 2, moved[0].LineNo)

	assert.True(t, decimal.NewFromInt(1045000).Equal(resp.Booking.ExpectedTotal))
}

func TestChangeRoom_Pricing(t *testing.T) {
	tests := []struct {
		name      string
		otherType bool
		reprice   bool
		expected  int64
		repriced  bool
	}{
		{"same type keeps booked prices", false, false, 1000000, false},
		{"same type reprices on request", false, true, 1400000, true},
		{"other type always reprices", true, false, 1800000, true},
		{"other type with reprice flag", true, true, 1800000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, hotel, booking := setup(t)
			// Цена типа выросла после бронирования
			h.Store.AddSpecialPrice(hotel.RoomType.ID, domain.RentalModeNight, 700000,
				h.At(2025, time.November, 1, 0, 0), h.At(2025, time.November, 30, 0, 0))

			target := hotel.Rooms[1]
			if tt.otherType {
				deluxe := h.Store.AddRoomType("DELUXE")
				target = h.Store.AddRoom(deluxe.ID, "201")
				h.Store.AddBasePrice(deluxe.ID, domain.RentalModeNight, 900000)
			}

			resp, err := h.ChangeRoom.Execute(context.Background(), &change_room.Request{
				BookingID:  booking.Booking.ID,
				FromRoomID: hotel.Rooms[0].ID,
				ToRoomID:   target.ID,
				Reprice:    tt.reprice,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.repriced, resp.Repriced)
			assert.True(t, decimal.NewFromInt(tt.expected).Equal(resp.Booking.RoomTotal), "got %s", resp.Booking.RoomTotal)
		})
	}
}

func TestChangeRoom_OtherTypeWithoutCapacity(t *testing.T) {
	h, hotel, booking := setup(t)
	deluxe := h.Store.AddRoomType("DELUXE")
	suite := h.Store.AddRoom(deluxe.ID, "201")
	h.Store.AddBasePrice(deluxe.ID, domain.RentalModeNight, 900000)

	ctx := context.Background()

	// Единственный номер типа удержан
	_, err := h.Holds.Create(ctx, &holds.CreateHoldRequest{
		RoomTypeID: deluxe.ID,
		Quantity:   1,
		From:       booking.Booking.PlannedCheckIn,
		To:         booking.Booking.PlannedCheckOut,
	})
	require.NoError(t, err)

	_, err = h.ChangeRoom.Execute(ctx, &change_room.Request{
		BookingID:  booking.Booking.ID,
		FromRoomID: hotel.Rooms[0].ID,
		ToRoomID:   suite.ID,
	})
	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeNoCapacity, ce.Code)
}

func TestChangeRoom_TargetTaken(t *testing.T) {
	h, hotel, booking := setup(t)

	otherIn, otherOut := h.Stay(2025, time.November, 12, 14)
	other := h.Book(t, otherIn, otherOut, hotel.Rooms[2].ID)

	_, err := h.ChangeRoom.Execute(context.Background(), &change_room.Request{
		BookingID:  booking.Booking.ID,
		FromRoomID: hotel.Rooms[0].ID,
		ToRoomID:   hotel.Rooms[2].ID,
	})
	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeRoomConflict, ce.Code)
	require.NotNil(t, ce.Conflict)
	assert.Equal(t, other.Booking.ID, ce.Conflict.BookingID)

	for _, line := range h.Store.ActiveLines(booking.Booking.ID) {
		assert.Equal(t, hotel.Rooms[0].ID, line.RoomID)
	}
}

func TestChangeRoom_Errors(t *testing.T) {
	h, hotel, booking := setup(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		req      *change_room.Request
		expected error
	}{
		{"same room", &change_room.Request{BookingID: booking.Booking.ID, FromRoomID: hotel.Rooms[0].ID, ToRoomID: hotel.Rooms[0].ID}, change_room.ErrInvalidInput},
		{"missing target", &change_room.Request{BookingID: booking.Booking.ID, FromRoomID: hotel.Rooms[0].ID}, change_room.ErrInvalidInput},
		{"unknown booking", &change_room.Request{BookingID: 9999, FromRoomID: hotel.Rooms[0].ID, ToRoomID: hotel.Rooms[1].ID}, change_room.ErrBookingNotFound},
		{"room not in booking", &change_room.Request{BookingID: booking.Booking.ID, FromRoomID: hotel.Rooms[2].ID, ToRoomID: hotel.Rooms[1].ID}, change_room.ErrRoomNotInBooking},
		{"unknown target", &change_room.Request{BookingID: booking.Booking.ID, FromRoomID: hotel.Rooms[0].ID, ToRoomID: 9999}, change_room.ErrRoomNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.ChangeRoom.Execute(ctx, tt.req)
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
		})
	}
}

func TestChangeRoom_NightRange(t *testing.T) {
	h := harness.New(t, time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC))
	hotel := h.StandardHotel()
	ctx := context.Background()

	checkIn, checkOut := h.Stay(2025, time.November, 13, 16)
	booking := h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)

	// 102 занята только в ночь 13-го
	otherIn, otherOut := h.Stay(2025, time.November, 12, 14)
	other := h.Book(t, otherIn, otherOut, hotel.Rooms[1].ID)

	_, err := h.ChangeRoom.Execute(ctx, &change_room.Request{
		BookingID:  booking.Booking.ID,
		FromRoomID: hotel.Rooms[0].ID,
		ToRoomID:   hotel.Rooms[1].ID,
	})
	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeRoomConflict, ce.Code)
	assert.Equal(t, other.Booking.ID, ce.Conflict.BookingID)

	from := h.At(2025, time.November, 14, 0, 0)
	resp, err := h.ChangeRoom.Execute(ctx, &change_room.Request{
		BookingID:  booking.Booking.ID,
		FromRoomID: hotel.Rooms[0].ID,
		ToRoomID:   hotel.Rooms[1].ID,
		From:       &from,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.MovedLines)
	assert.False(t, resp.Repriced)
	assert.True(t, decimal.NewFromInt(1500000).Equal(resp.Booking.RoomTotal), "got %s", resp.Booking.RoomTotal)

	rooms := make(map[string]int64)
	for _, line := range h.Store.ActiveLines(booking.Booking.ID) {
		require.NotNil(t, line.NightDate)
		rooms[line.NightDate.Format(domain.DateFormat)] = line.RoomID
	}
	assert.Equal(t, map[string]int64{
		"2025-11-13": hotel.Rooms[0].ID,
		"2025-11-14": hotel.Rooms[1].ID,
		"2025-11-15": hotel.Rooms[1].ID,
	}, rooms)
}

func TestChangeRoom_NightRangeBounded(t *testing.T) {
	h := harness.New(t, time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC))
	hotel := h.StandardHotel()

	checkIn, checkOut := h.Stay(2025, time.November, 13, 16)
	booking := h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)

	from, to := h.At(2025, time.November, 14, 0, 0), h.At(2025, time.November, 15, 0, 0)
	resp, err := h.ChangeRoom.Execute(context.Background(), &change_room.Request{
		BookingID:  booking.Booking.ID,
		FromRoomID: hotel.Rooms[0].ID,
		ToRoomID:   hotel.Rooms[2].ID,
		From:       &from,
		To:         &to,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.MovedLines)

	moved := 0
	for _, line := range h.Store.ActiveLines(booking.Booking.ID) {
		if line.RoomID == hotel.Rooms[2].ID {
			moved++
			assert.Equal(t, "2025-11-14", line.NightDate.Format(domain.DateFormat))
		}
	}
	assert.Equal(t, 1, moved)
}

func TestChangeRoom_NightRangeErrors(t *testing.T) {
	h, hotel, booking := setup(t)
	ctx := context.Background()

	hourly, err := h.CreateBooking.Execute(ctx, &create_booking.Request{
		GuestID:    1,
		RentalMode: string(domain.RentalModeHour),
		CheckIn:    h.At(2025, time.November, 20, 10, 0),
		CheckOut:   h.At(2025, time.November, 20, 13, 0),
		RoomIDs:    []int64{hotel.Rooms[2].ID},
	})
	require.NoError(t, err)

	nov14, nov20, nov21 := h.At(2025, time.November, 14, 0, 0), h.At(2025, time.November, 20, 0, 0), h.At(2025, time.November, 21, 0, 0)

	tests := []struct {
		name     string
		req      *change_room.Request
		expected error
	}{
		{"empty range", &change_room.Request{BookingID: booking.Booking.ID, FromRoomID: hotel.Rooms[0].ID, ToRoomID: hotel.Rooms[1].ID, From: &nov14, To: &nov14}, change_room.ErrInvalidInput},
		{"no nights in range", &change_room.Request{BookingID: booking.Booking.ID, FromRoomID: hotel.Rooms[0].ID, ToRoomID: hotel.Rooms[1].ID, From: &nov20, To: &nov21}, change_room.ErrRoomNotInBooking},
		{"hourly booking", &change_room.Request{BookingID: hourly.Booking.ID, FromRoomID: hotel.Rooms[2].ID, ToRoomID: hotel.Rooms[1].ID, From: &nov20}, change_room.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.ChangeRoom.Execute(ctx, tt.req)
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
		})
	}

	for _, line := range h.Store.ActiveLines(booking.Booking.ID) {
		assert.Equal(t, hotel.Rooms[0].ID, line.RoomID)
	}
}
