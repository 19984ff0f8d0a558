package add_room_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/testutil/harness"
	"github.com/m04kA/SMC-HotelService/internal/usecase/add_room"
	"github.com/m04kA/SMC-HotelService/internal/usecase/create_booking"
)

func setup(t *testing.T) (*harness.Harness, *harness.Hotel, *create_booking.Response) {
	h := harness.New(t, time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC))
	hotel := h.StandardHotel()

	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	return h, hotel, h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)
}

func TestAddRoom_CoversWholeStay(t *testing.T) {
	h, hotel, booking := setup(t)

	resp, err := h.AddRoom.Execute(context.Background(), &add_room.Request{
		BookingID: booking.Booking.ID,
		RoomID:    hotel.Rooms[1].ID,
	})
	require.NoError(t, err)

	require.Len(t, resp.Lines, 2)
	for i, line := range resp.Lines {
		assert.Equal(t, hotel.Rooms[1].ID, line.RoomID)
		assert.Equal(t, i+1, line.LineNo)
		assert.Equal(t, h.At(2025, time.November, 13+i, 0, 0), *line.NightDate)
		assert.True(t, decimal.NewFromInt(500000).Equal(line.LineTotal))
	}
	assert.True(t, decimal.NewFromInt(2000000).Equal(resp.Booking.ExpectedTotal))
	assert.True(t, decimal.NewFromInt(600000).Equal(resp.Booking.DepositRequired))
	assert.Len(t, h.Store.ActiveLines(booking.Booking.ID), 4)
}

func TestAddRoom_AlreadyInBooking(t *testing.T) {
	h, hotel, booking := setup(t)

	_, err := h.AddRoom.Execute(context.Background(), &add_room.Request{
		BookingID: booking.Booking.ID,
		RoomID:    hotel.Rooms[0].ID,
	})
	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeDuplicate, ce.Code)
	assert.True(t, errors.Is(err, add_room.ErrRoomAlreadyAdded))
}

func TestAddRoom_RoomTaken(t *testing.T) {
	h, hotel, booking := setup(t)

	otherIn, otherOut := h.Stay(2025, time.November, 14, 16)
	other := h.Book(t, otherIn, otherOut, hotel.Rooms[2].ID)

	_, err := h.AddRoom.Execute(context.Background(), &add_room.Request{
		BookingID: booking.Booking.ID,
		RoomID:    hotel.Rooms[2].ID,
	})
	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeRoomConflict, ce.Code)
	require.NotNil(t, ce.Conflict)
	assert.Equal(t, other.Booking.ID, ce.Conflict.BookingID)

	assert.Len(t, h.Store.ActiveLines(booking.Booking.ID), 2, "failed add leaves the booking untouched")
}

func TestAddRoom_Maintenance(t *testing.T) {
	h, hotel, booking := setup(t)
	ctx := context.Background()

	require.NoError(t, h.Store.Rooms().UpdateRoomsStatus(ctx, []int64{hotel.Rooms[1].ID}, domain.RoomMaintenance))

	_, err := h.AddRoom.Execute(ctx, &add_room.Request{BookingID: booking.Booking.ID, RoomID: hotel.Rooms[1].ID})
	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeRoomConflict, ce.Code)
	assert.True(t, errors.Is(err, add_room.ErrRoomNotBookable))
}

func TestAddRoom_Errors(t *testing.T) {
	h, hotel, booking := setup(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		req      *add_room.Request
		expected error
	}{
		{"zero booking", &add_room.Request{RoomID: hotel.Rooms[1].ID}, add_room.ErrInvalidInput},
		{"zero room", &add_room.Request{BookingID: booking.Booking.ID}, add_room.ErrInvalidInput},
		{"unknown booking", &add_room.Request{BookingID: 9999, RoomID: hotel.Rooms[1].ID}, add_room.ErrBookingNotFound},
		{"unknown room", &add_room.Request{BookingID: booking.Booking.ID, RoomID: 9999}, add_room.ErrRoomNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.AddRoom.Execute(ctx, tt.req)
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
		})
	}
}
