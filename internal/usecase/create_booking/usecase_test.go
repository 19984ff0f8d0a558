package create_booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	holdsService "github.com/m04kA/SMC-HotelService/internal/service/holds"
	lifecycleService "github.com/m04kA/SMC-HotelService/internal/service/lifecycle"
	"github.com/m04kA/SMC-HotelService/internal/testutil/harness"
	"github.com/m04kA/SMC-HotelService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-HotelService/pkg/ptr"
)

func setup(t *testing.T) (*harness.Harness, *harness.Hotel) {
	h := harness.New(t, time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC))
	return h, h.StandardHotel()
}

func TestCreateBooking_TwoNightsAtBasePrice(t *testing.T) {
	h, hotel := setup(t)
	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)

	resp := h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)

	require.Len(t, resp.Lines, 2)
	for i, l := range resp.Lines {
		assert.Equal(t, domain.UnitNight, l.Unit)
		assert.Equal(t, i+1, l.LineNo)
		assert.True(t, decimal.NewFromInt(500000).Equal(l.UnitPrice))
	}
	assert.Equal(t, h.At(2025, time.November, 13, 0, 0), *resp.Lines[0].NightDate)
	assert.Equal(t, h.At(2025, time.November, 14, 0, 0), *resp.Lines[1].NightDate)

	b := resp.Booking
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, "Nguyen Van A", b.GuestName)
	assert.True(t, decimal.NewFromInt(1000000).Equal(b.ExpectedTotal), "expected %s", b.ExpectedTotal)
	assert.True(t, decimal.NewFromInt(300000).Equal(b.DepositRequired), "deposit %s", b.DepositRequired)
	assert.False(t, resp.GuestDegraded)

	stored := h.Store.Booking(b.ID)
	require.NotNil(t, stored)
	assert.True(t, b.ExpectedTotal.Equal(stored.ExpectedTotal))
}

func TestCreateBooking_SpecialPeriodAppliesPerNight(t *testing.T) {
	h, hotel := setup(t)
	h.Store.AddSpecialPrice(hotel.RoomType.ID, domain.RentalModeNight, 800000,
		h.At(2025, time.December, 24, 0, 0), h.At(2025, time.December, 26, 0, 0))

	checkIn, checkOut := h.Stay(2025, time.December, 25, 27)
	resp := h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)

	require.Len(t, resp.Lines, 2)
	assert.True(t, decimal.NewFromInt(800000).Equal(resp.Lines[0].UnitPrice), "night 1: %s", resp.Lines[0].UnitPrice)
	assert.True(t, decimal.NewFromInt(500000).Equal(resp.Lines[1].UnitPrice), "night 2: %s", resp.Lines[1].UnitPrice)
	assert.True(t, decimal.NewFromInt(1300000).Equal(resp.Booking.ExpectedTotal))
}

func TestCreateBooking_HourlyStay(t *testing.T) {
	h, hotel := setup(t)
	start := h.At(2025, time.November, 13, 9, 0)
	end := start.Add(2*time.Hour + 30*time.Minute)

	resp, err := h.CreateBooking.Execute(context.Background(), &create_booking.Request{
		GuestID:    1,
		RentalMode: string(domain.RentalModeHour),
		CheckIn:    start,
		CheckOut:   end,
		RoomIDs:    []int64{hotel.Rooms[0].ID},
	})
	require.NoError(t, err)

	require.Len(t, resp.Lines, 1)
	line := resp.Lines[0]
	assert.Equal(t, domain.UnitHour, line.Unit)
	assert.Equal(t, start, *line.StartAt)
	assert.True(t, decimal.NewFromInt(360000).Equal(line.LineTotal), "3 billable hours: %s", line.LineTotal)
}

func TestCreateBooking_RoomConflict(t *testing.T) {
	h, hotel := setup(t)
	room := hotel.Rooms[0]

	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	first := h.Book(t, checkIn, checkOut, room.ID)

	overlapIn, overlapOut := h.Stay(2025, time.November, 14, 16)
	_, err := h.CreateBooking.Execute(context.Background(), &create_booking.Request{
		GuestID:    1,
		RentalMode: string(domain.RentalModeNight),
		CheckIn:    overlapIn,
		CheckOut:   overlapOut,
		RoomIDs:    []int64{room.ID},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	ce, ok := domain.AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeRoomConflict, ce.Code)
	require.NotNil(t, ce.Conflict)
	assert.Equal(t, room.ID, ce.Conflict.RoomID)
	assert.Equal(t, first.Booking.ID, ce.Conflict.BookingID)
	assert.Equal(t, checkIn, ce.Conflict.From)
	assert.Equal(t, checkOut, ce.Conflict.To)

	// Окна касаются: выезд 12:00, следующий заезд 14:00 того же дня
	nextIn, nextOut := h.Stay(2025, time.November, 15, 17)
	h.Book(t, nextIn, nextOut, room.ID)
}

func TestCreateBooking_CancelledBookingFreesRoom(t *testing.T) {
	h, hotel := setup(t)
	room := hotel.Rooms[0]
	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)

	first := h.Book(t, checkIn, checkOut, room.ID)
	_, err := h.Lifecycle.Cancel(context.Background(), &lifecycleService.CancelRequest{BookingID: first.Booking.ID})
	require.NoError(t, err)

	second := h.Book(t, checkIn, checkOut, room.ID)
	assert.NotEqual(t, first.Booking.ID, second.Booking.ID)
}

func TestCreateBooking_EarlyActualCheckInBlocksRoom(t *testing.T) {
	h, hotel := setup(t)
	room := hotel.Rooms[0]
	ctx := context.Background()

	checkIn, checkOut := h.Stay(2025, time.November, 14, 16)
	first := h.Book(t, checkIn, checkOut, room.ID)

	// Гость заселился в 08:00 вместо 14:00
	h.Clock.Set(h.At(2025, time.November, 14, 9, 0))
	_, err := h.Lifecycle.CheckIn(ctx, &lifecycleService.CheckInRequest{
		BookingID:     first.Booking.ID,
		ActualCheckIn: ptr.Ptr(h.At(2025, time.November, 14, 8, 0)),
	})
	require.NoError(t, err)

	_, err = h.CreateBooking.Execute(ctx, &create_booking.Request{
		GuestID:    1,
		RentalMode: string(domain.RentalModeNight),
		CheckIn:    h.At(2025, time.November, 13, 14, 0),
		CheckOut:   h.At(2025, time.November, 14, 10, 0),
		RoomIDs:    []int64{room.ID},
	})
	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeRoomConflict, ce.Code)
	assert.Equal(t, first.Booking.ID, ce.Conflict.BookingID)
	assert.Equal(t, h.At(2025, time.November, 14, 8, 0), ce.Conflict.From)
}

func TestCreateBooking_NoCapacityBecauseOfHolds(t *testing.T) {
	h, hotel := setup(t)
	ctx := context.Background()
	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)

	_, err := h.Holds.Create(ctx, &holdsService.CreateHoldRequest{
		RoomTypeID: hotel.RoomType.ID,
		Quantity:   3,
		From:       checkIn,
		To:         checkOut,
	})
	require.NoError(t, err)

	_, err = h.CreateBooking.Execute(ctx, &create_booking.Request{
		GuestID:    1,
		RentalMode: string(domain.RentalModeNight),
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		RoomIDs:    []int64{hotel.Rooms[0].ID},
	})
	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeNoCapacity, ce.Code)
}

func TestCreateBooking_ConsumesHold(t *testing.T) {
	h, hotel := setup(t)
	ctx := context.Background()
	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)

	hold, err := h.Holds.Create(ctx, &holdsService.CreateHoldRequest{
		RoomTypeID: hotel.RoomType.ID,
		Quantity:   3,
		From:       checkIn,
		To:         checkOut,
	})
	require.NoError(t, err)

	resp, err := h.CreateBooking.Execute(ctx, &create_booking.Request{
		GuestID:    1,
		RentalMode: string(domain.RentalModeNight),
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		RoomIDs:    []int64{hotel.Rooms[0].ID},
		HoldID:     &hold.ID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Lines, 2)
	assert.Equal(t, domain.HoldReleased, h.Store.Hold(hold.ID).Status)
}

func TestCreateBooking_HoldMustCoverStay(t *testing.T) {
	h, hotel := setup(t)
	ctx := context.Background()
	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)

	hold, err := h.Holds.Create(ctx, &holdsService.CreateHoldRequest{
		RoomTypeID: hotel.RoomType.ID,
		Quantity:   1,
		From:       checkIn,
		To:         checkOut,
	})
	require.NoError(t, err)

	_, err = h.CreateBooking.Execute(ctx, &create_booking.Request{
		GuestID:    1,
		RentalMode: string(domain.RentalModeNight),
		CheckIn:    checkIn,
		CheckOut:   checkOut.AddDate(0, 0, 1),
		RoomIDs:    []int64{hotel.Rooms[0].ID},
		HoldID:     &hold.ID,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, create_booking.ErrHoldMismatch))
	assert.Equal(t, domain.HoldConfirmed, h.Store.Hold(hold.ID).Status, "hold survives a failed booking")
}

func TestCreateBooking_GuestDirectoryDegraded(t *testing.T) {
	h, hotel := setup(t)
	h.Guests.SetDegraded(true)
	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)

	resp := h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)
	assert.True(t, resp.GuestDegraded)
	assert.Empty(t, resp.Booking.GuestName)
}

func TestCreateBooking_Validation(t *testing.T) {
	h, hotel := setup(t)
	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)

	tests := []struct {
		name     string
		req      *create_booking.Request
		expected error
	}{
		{
			name:     "unknown guest",
			req:      &create_booking.Request{GuestID: 99, RentalMode: "night", CheckIn: checkIn, CheckOut: checkOut},
			expected: create_booking.ErrGuestNotFound,
		},
		{
			name:     "unknown rental mode",
			req:      &create_booking.Request{GuestID: 1, RentalMode: "week", CheckIn: checkIn, CheckOut: checkOut},
			expected: create_booking.ErrInvalidInput,
		},
		{
			name:     "check-out before check-in",
			req:      &create_booking.Request{GuestID: 1, RentalMode: "night", CheckIn: checkOut, CheckOut: checkIn},
			expected: create_booking.ErrInvalidStay,
		},
		{
			name: "same-day nightly stay",
			req: &create_booking.Request{GuestID: 1, RentalMode: "night",
				CheckIn: h.At(2025, time.November, 13, 8, 0), CheckOut: h.At(2025, time.November, 13, 20, 0)},
			expected: create_booking.ErrInvalidStay,
		},
		{
			name: "duplicate room",
			req: &create_booking.Request{GuestID: 1, RentalMode: "night", CheckIn: checkIn, CheckOut: checkOut,
				RoomIDs: []int64{hotel.Rooms[0].ID, hotel.Rooms[0].ID}},
			expected: create_booking.ErrInvalidInput,
		},
		{
			name: "unknown room",
			req: &create_booking.Request{GuestID: 1, RentalMode: "night", CheckIn: checkIn, CheckOut: checkOut,
				RoomIDs: []int64{9999}},
			expected: create_booking.ErrRoomNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.CreateBooking.Execute(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
		})
	}
}

func TestCreateBooking_WithoutRooms(t *testing.T) {
	h, _ := setup(t)
	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)

	resp := h.Book(t, checkIn, checkOut)
	assert.Empty(t, resp.Lines)
	assert.True(t, resp.Booking.ExpectedTotal.IsZero())
}
