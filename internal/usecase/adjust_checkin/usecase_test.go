package adjust_checkin_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	chargesService "github.com/m04kA/SMC-HotelService/internal/service/charges"
	invoiceModels "github.com/m04kA/SMC-HotelService/internal/service/invoices/models"
	lifecycleService "github.com/m04kA/SMC-HotelService/internal/service/lifecycle"
	"github.com/m04kA/SMC-HotelService/internal/testutil/harness"
	"github.com/m04kA/SMC-HotelService/internal/usecase/adjust_checkin"
	"github.com/m04kA/SMC-HotelService/internal/usecase/create_booking"
)

func setup(t *testing.T) (*harness.Harness, *harness.Hotel) {
	h := harness.New(t, time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC))
	return h, h.StandardHotel()
}

func TestAdjustCheckIn_EarlierConflictLeavesLinesUntouched(t *testing.T) {
	h, hotel := setup(t)
	room := hotel.Rooms[0]

	// Комната занята в ночь 12 -> 13
	blockerIn, blockerOut := h.Stay(2025, time.November, 12, 13)
	blocker := h.Book(t, blockerIn, blockerOut, room.ID)

	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	booking := h.Book(t, checkIn, checkOut, room.ID)
	before := h.Store.Lines(booking.Booking.ID)

	_, err := h.AdjustCheckIn.Execute(context.Background(), &adjust_checkin.Request{
		BookingID:  booking.Booking.ID,
		NewCheckIn: h.At(2025, time.November, 12, 14, 0),
	})

	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeRoomConflict, ce.Code)
	assert.Equal(t, blocker.Booking.ID, ce.Conflict.BookingID)
	assert.Equal(t, room.ID, ce.Conflict.RoomID)

	assert.Equal(t, before, h.Store.Lines(booking.Booking.ID))
	stored := h.Store.Booking(booking.Booking.ID)
	assert.Equal(t, checkIn, stored.PlannedCheckIn)
	assert.True(t, decimal.NewFromInt(1000000).Equal(stored.ExpectedTotal))
}

func TestAdjustCheckIn_EarlierAddsNightsAtBookedPrice(t *testing.T) {
	h, hotel := setup(t)
	room := hotel.Rooms[0]

	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	booking := h.Book(t, checkIn, checkOut, room.ID)

	// Цена поднялась после бронирования: новые ночи берут цену уже забронированной ночи
	h.Store.AddSpecialPrice(hotel.RoomType.ID, domain.RentalModeNight, 900000,
		h.At(2025, time.November, 1, 0, 0), h.At(2025, time.November, 30, 0, 0))

	resp, err := h.AdjustCheckIn.Execute(context.Background(), &adjust_checkin.Request{
		BookingID:  booking.Booking.ID,
		NewCheckIn: h.At(2025, time.November, 11, 14, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.AddedNights)

	lines := h.Store.ActiveLines(booking.Booking.ID)
	require.Len(t, lines, 4)
	for _, l := range lines {
		assert.True(t, decimal.NewFromInt(500000).Equal(l.UnitPrice), "line %d: %s", l.LineNo, l.UnitPrice)
	}
	assert.Equal(t, []int{1, 2, 3, 4}, []int{lines[0].LineNo, lines[1].LineNo, lines[2].LineNo, lines[3].LineNo})
	assert.True(t, decimal.NewFromInt(2000000).Equal(resp.Booking.ExpectedTotal))
	assert.True(t, decimal.NewFromInt(600000).Equal(resp.Booking.DepositRequired))
	assert.Equal(t, h.At(2025, time.November, 11, 14, 0), resp.Booking.PlannedCheckIn)
}

func TestAdjustCheckIn_LaterRemovesNights(t *testing.T) {
	h, hotel := setup(t)

	checkIn, checkOut := h.Stay(2025, time.November, 13, 16)
	booking := h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)

	resp, err := h.AdjustCheckIn.Execute(context.Background(), &adjust_checkin.Request{
		BookingID:  booking.Booking.ID,
		NewCheckIn: h.At(2025, time.November, 14, 14, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.RemovedLines)

	// Строка без начислений и счетов удаляется физически
	lines := h.Store.Lines(booking.Booking.ID)
	require.Len(t, lines, 2)
	assert.Equal(t, h.At(2025, time.November, 14, 0, 0), *lines[0].NightDate)
	assert.True(t, decimal.NewFromInt(1000000).Equal(resp.Booking.ExpectedTotal))
}

func TestAdjustCheckIn_LaterCancelsBilledNights(t *testing.T) {
	h, hotel := setup(t)
	ctx := context.Background()
	breakfast := h.Store.AddService("BREAKFAST", 45000)

	checkIn, checkOut := h.Stay(2025, time.November, 13, 16)
	booking := h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)

	lineNo := 1
	_, err := h.Charges.Add(ctx, &chargesService.AddChargeRequest{
		BookingID: booking.Booking.ID,
		RoomID:    hotel.Rooms[0].ID,
		LineNo:    &lineNo,
		ServiceID: breakfast.ID,
		Quantity:  2,
		Origin:    domain.OriginStaff,
	})
	require.NoError(t, err)

	resp, err := h.AdjustCheckIn.Execute(ctx, &adjust_checkin.Request{
		BookingID:  booking.Booking.ID,
		NewCheckIn: h.At(2025, time.November, 14, 14, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.RemovedLines)

	lines := h.Store.Lines(booking.Booking.ID)
	require.Len(t, lines, 3, "line with a charge is cancelled, not deleted")
	assert.Equal(t, domain.LineCancelled, lines[0].Status)

	charges := h.Store.ChargesOf(booking.Booking.ID)
	require.Len(t, charges, 1)
	assert.Equal(t, domain.ChargeCancelled, charges[0].Status)

	assert.True(t, decimal.NewFromInt(1000000).Equal(resp.Booking.ExpectedTotal))
	assert.True(t, resp.Booking.ServiceTotal.IsZero())
}

func TestAdjustCheckIn_Rejections(t *testing.T) {
	h, hotel := setup(t)
	ctx := context.Background()

	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	booking := h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)

	t.Run("same day earlier", func(t *testing.T) {
		_, err := h.AdjustCheckIn.Execute(ctx, &adjust_checkin.Request{
			BookingID:  booking.Booking.ID,
			NewCheckIn: h.At(2025, time.November, 13, 9, 0),
		})
		assert.True(t, errors.Is(err, adjust_checkin.ErrNoDateChange), "got %v", err)
	})

	t.Run("past check-out", func(t *testing.T) {
		_, err := h.AdjustCheckIn.Execute(ctx, &adjust_checkin.Request{
			BookingID:  booking.Booking.ID,
			NewCheckIn: h.At(2025, time.November, 16, 14, 0),
		})
		assert.True(t, errors.Is(err, adjust_checkin.ErrInvalidInput), "got %v", err)
	})

	t.Run("no nights left", func(t *testing.T) {
		_, err := h.AdjustCheckIn.Execute(ctx, &adjust_checkin.Request{
			BookingID:  booking.Booking.ID,
			NewCheckIn: h.At(2025, time.November, 15, 9, 0),
		})
		assert.True(t, errors.Is(err, adjust_checkin.ErrNoNightsLeft), "got %v", err)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := h.AdjustCheckIn.Execute(ctx, &adjust_checkin.Request{BookingID: 9999, NewCheckIn: checkIn})
		assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
	})

	t.Run("checked in", func(t *testing.T) {
		h.Clock.Set(h.At(2025, time.November, 13, 15, 0))
		_, err := h.Lifecycle.CheckIn(ctx, &lifecycleService.CheckInRequest{BookingID: booking.Booking.ID})
		require.NoError(t, err)

		_, err = h.AdjustCheckIn.Execute(ctx, &adjust_checkin.Request{
			BookingID:  booking.Booking.ID,
			NewCheckIn: h.At(2025, time.November, 12, 14, 0),
		})
		ce, ok := domain.AsConflict(err)
		require.True(t, ok, "got %v", err)
		assert.Equal(t, domain.CodeStayLocked, ce.Code)
	})
}

func TestAdjustCheckIn_HourlyShiftKeepsPrice(t *testing.T) {
	h, hotel := setup(t)
	ctx := context.Background()

	start := h.At(2025, time.November, 13, 10, 0)
	resp, err := h.CreateBooking.Execute(ctx, &create_booking.Request{
		GuestID:    1,
		RentalMode: string(domain.RentalModeHour),
		CheckIn:    start,
		CheckOut:   start.Add(3 * time.Hour),
		RoomIDs:    []int64{hotel.Rooms[0].ID},
	})
	require.NoError(t, err)
	before := resp.Lines[0].LineTotal

	adjusted, err := h.AdjustCheckIn.Execute(ctx, &adjust_checkin.Request{
		BookingID:  resp.Booking.ID,
		NewCheckIn: start.Add(-2 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, adjusted.ShiftedLines)

	lines := h.Store.ActiveLines(resp.Booking.ID)
	require.Len(t, lines, 1)
	assert.Equal(t, start.Add(-2*time.Hour), *lines[0].StartAt)
	assert.True(t, before.Equal(lines[0].LineTotal), "price stays frozen until an explicit reprice")
}

func TestAdjustCheckIn_PaidDepositInvoiceIsFrozen(t *testing.T) {
	h, hotel := setup(t)
	ctx := context.Background()

	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	booking := h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)
	deposit := h.PayDeposit(t, booking.Booking.ID)
	paidTotal := h.Store.Invoice(deposit.ID).Total

	_, err := h.AdjustCheckIn.Execute(ctx, &adjust_checkin.Request{
		BookingID:  booking.Booking.ID,
		NewCheckIn: h.At(2025, time.November, 12, 14, 0),
	})
	require.NoError(t, err)

	inv := h.Store.Invoice(deposit.ID)
	assert.Equal(t, domain.InvoicePaid, inv.Status)
	assert.True(t, paidTotal.Equal(inv.Total), "paid invoice totals never change")

	stored := h.Store.Booking(booking.Booking.ID)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
	assert.True(t, decimal.NewFromInt(1500000).Equal(stored.ExpectedTotal))

	_, err = h.Invoices.Create(ctx, &invoiceModels.CreateInvoiceRequest{
		Kind:       string(domain.InvoiceFinal),
		BookingIDs: []int64{booking.Booking.ID},
	})
	require.NoError(t, err)
}

func TestAdjustCheckIn_EarlierCountsCalendarNights(t *testing.T) {
	h, hotel := setup(t)

	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	booking := h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)

	// Меньше суток до старого заезда, но уже ночь 12-го
	resp, err := h.AdjustCheckIn.Execute(context.Background(), &adjust_checkin.Request{
		BookingID:  booking.Booking.ID,
		NewCheckIn: h.At(2025, time.November, 12, 20, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.AddedNights)

	lines := h.Store.ActiveLines(booking.Booking.ID)
	require.Len(t, lines, 3)
	assert.Equal(t, "2025-11-12", lines[len(lines)-1].NightDate.Format(domain.DateFormat))
	assert.True(t, decimal.NewFromInt(1500000).Equal(resp.Booking.RoomTotal), "got %s", resp.Booking.RoomTotal)
}
