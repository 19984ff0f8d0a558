package lifecycle_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	invoiceModels "github.com/m04kA/SMC-HotelService/internal/service/invoices/models"
	"github.com/m04kA/SMC-HotelService/internal/service/lifecycle"
	"github.com/m04kA/SMC-HotelService/internal/testutil/harness"
	"github.com/m04kA/SMC-HotelService/pkg/ptr"
)

func setup(t *testing.T) (*harness.Harness, *harness.Hotel, int64) {
	h := harness.New(t, time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC))
	hotel := h.StandardHotel()

	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	booking := h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID, hotel.Rooms[1].ID)
	return h, hotel, booking.Booking.ID
}

func TestConfirm_RequiresPaidDeposit(t *testing.T) {
	h, _, bookingID := setup(t)
	ctx := context.Background()

	_, err := h.Lifecycle.Confirm(ctx, bookingID)
	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeDepositNotPaid, ce.Code)
	assert.True(t, errors.Is(err, lifecycle.ErrDepositNotPaid))
	assert.Equal(t, domain.StatusPending, h.Store.Booking(bookingID).Status)

	// Оплата депозита подтверждает бронирование сама; повторное подтверждение - недопустимый переход
	h.PayDeposit(t, bookingID)
	booking := h.Store.Booking(bookingID)
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
	assert.True(t, booking.DepositRequired.Equal(booking.DepositPaid))

	_, err = h.Lifecycle.Confirm(ctx, bookingID)
	ce, ok = domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeIllegalTransition, ce.Code)
}

func TestCancelledBookingIsTerminal(t *testing.T) {
	h, _, bookingID := setup(t)
	ctx := context.Background()

	result, err := h.Lifecycle.Cancel(ctx, &lifecycle.CancelRequest{BookingID: bookingID, Reason: ptr.Ptr("plans changed")})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, result.From)
	assert.Equal(t, domain.StatusCancelled, result.To)
	require.NotNil(t, h.Store.Booking(bookingID).CancellationReason)
	assert.Equal(t, "plans changed", *h.Store.Booking(bookingID).CancellationReason)

	h.Clock.Set(h.At(2025, time.November, 13, 15, 0))
	attempts := map[string]func() error{
		"confirm": func() error { _, err := h.Lifecycle.Confirm(ctx, bookingID); return err },
		"check in": func() error {
			_, err := h.Lifecycle.CheckIn(ctx, &lifecycle.CheckInRequest{BookingID: bookingID})
			return err
		},
		"check out": func() error { _, err := h.Lifecycle.CheckOut(ctx, bookingID); return err },
		"cancel":    func() error { _, err := h.Lifecycle.Cancel(ctx, &lifecycle.CancelRequest{BookingID: bookingID}); return err },
		"no show":   func() error { _, err := h.Lifecycle.NoShow(ctx, bookingID); return err },
	}

	for name, attempt := range attempts {
		t.Run(name, func(t *testing.T) {
			err := attempt()
			ce, ok := domain.AsConflict(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, domain.CodeIllegalTransition, ce.Code)
			assert.Equal(t, domain.StatusCancelled, h.Store.Booking(bookingID).Status)
		})
	}
}

func TestCancel_ReasonTooLong(t *testing.T) {
	h, _, bookingID := setup(t)

	reason := strings.Repeat("x", domain.MaxCancellationReasonLength+1)
	_, err := h.Lifecycle.Cancel(context.Background(), &lifecycle.CancelRequest{BookingID: bookingID, Reason: &reason})
	assert.True(t, errors.Is(err, lifecycle.ErrInvalidInput))
	assert.Equal(t, domain.StatusPending, h.Store.Booking(bookingID).Status)
}

func TestCheckIn(t *testing.T) {
	t.Run("marks rooms occupied", func(t *testing.T) {
		h, hotel, bookingID := setup(t)
		now := h.At(2025, time.November, 13, 14, 30)
		h.Clock.Set(now)

		result, err := h.Lifecycle.CheckIn(context.Background(), &lifecycle.CheckInRequest{BookingID: bookingID})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCheckedIn, result.Booking.Status)
		require.NotNil(t, result.Booking.ActualCheckIn)
		assert.True(t, now.Equal(*result.Booking.ActualCheckIn))

		assert.Equal(t, domain.RoomOccupied, h.Store.Room(hotel.Rooms[0].ID).Status)
		assert.Equal(t, domain.RoomOccupied, h.Store.Room(hotel.Rooms[1].ID).Status)
		assert.Equal(t, domain.RoomAvailable, h.Store.Room(hotel.Rooms[2].ID).Status)
	})

	t.Run("actual time in the future", func(t *testing.T) {
		h, _, bookingID := setup(t)
		h.Clock.Set(h.At(2025, time.November, 13, 10, 0))

		_, err := h.Lifecycle.CheckIn(context.Background(), &lifecycle.CheckInRequest{
			BookingID:     bookingID,
			ActualCheckIn: ptr.Ptr(h.At(2025, time.November, 13, 14, 0)),
		})
		assert.True(t, errors.Is(err, lifecycle.ErrInvalidCheckIn))
	})

	t.Run("early arrival into an occupied room", func(t *testing.T) {
		h, hotel, bookingID := setup(t)
		previousIn, previousOut := h.Stay(2025, time.November, 12, 13)
		previous := h.Book(t, previousIn, previousOut, hotel.Rooms[1].ID)

		// Предыдущий гость заселён и живёт до 12:00
		h.Clock.Set(h.At(2025, time.November, 12, 15, 0))
		_, err := h.Lifecycle.CheckIn(context.Background(), &lifecycle.CheckInRequest{BookingID: previous.Booking.ID})
		require.NoError(t, err)

		h.Clock.Set(h.At(2025, time.November, 13, 10, 0))
		_, err = h.Lifecycle.CheckIn(context.Background(), &lifecycle.CheckInRequest{
			BookingID:     bookingID,
			ActualCheckIn: ptr.Ptr(h.At(2025, time.November, 13, 9, 0)),
		})
		ce, ok := domain.AsConflict(err)
		require.True(t, ok, "got %v", err)
		assert.Equal(t, domain.CodeRoomConflict, ce.Code)
		assert.Equal(t, previous.Booking.ID, ce.Conflict.BookingID)
		assert.Equal(t, domain.StatusPending, h.Store.Booking(bookingID).Status)
	})
}

func TestCheckOut_IssuesFinalInvoiceAndSchedulesCleaning(t *testing.T) {
	h, hotel, bookingID := setup(t)
	ctx := context.Background()

	h.Clock.Set(h.At(2025, time.November, 13, 14, 0))
	_, err := h.Lifecycle.CheckIn(ctx, &lifecycle.CheckInRequest{BookingID: bookingID})
	require.NoError(t, err)

	checkedOutAt := h.At(2025, time.November, 15, 11, 0)
	h.Clock.Set(checkedOutAt)
	result, err := h.Lifecycle.CheckOut(ctx, bookingID)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCheckedOut, result.Booking.Status)
	require.NotNil(t, result.Booking.ActualCheckOut)
	assert.True(t, checkedOutAt.Equal(*result.Booking.ActualCheckOut))

	require.NotNil(t, result.IssuedInvoiceID)
	inv := h.Store.Invoice(*result.IssuedInvoiceID)
	assert.Equal(t, domain.InvoiceFinal, inv.Kind)
	assert.Equal(t, domain.InvoiceIssued, inv.Status)
	assert.True(t, decimal.NewFromInt(2000000).Equal(inv.FinalAmount), "got %s", inv.FinalAmount)

	assert.Equal(t, 2, result.CleaningTasks)
	tasks := h.Store.Tasks()
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.Equal(t, domain.TaskKindCleaning, task.Kind)
		assert.Equal(t, domain.TaskOpen, task.Status)
		require.NotNil(t, task.BookingID)
		assert.Equal(t, bookingID, *task.BookingID)
	}

	assert.Equal(t, domain.RoomAvailable, h.Store.Room(hotel.Rooms[0].ID).Status)
	assert.Equal(t, domain.RoomAvailable, h.Store.Room(hotel.Rooms[1].ID).Status)

	// Выезд необратим
	_, err = h.Lifecycle.CheckIn(ctx, &lifecycle.CheckInRequest{BookingID: bookingID})
	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeIllegalTransition, ce.Code)
}

func TestCheckOut_ExistingInvoiceIsKept(t *testing.T) {
	h, _, bookingID := setup(t)
	ctx := context.Background()
	h.PayDeposit(t, bookingID)

	h.Clock.Set(h.At(2025, time.November, 13, 14, 0))
	_, err := h.Lifecycle.CheckIn(ctx, &lifecycle.CheckInRequest{BookingID: bookingID})
	require.NoError(t, err)

	h.Clock.Set(h.At(2025, time.November, 15, 11, 0))
	result, err := h.Lifecycle.CheckOut(ctx, bookingID)
	require.NoError(t, err)
	assert.Nil(t, result.IssuedInvoiceID)
}

func TestNoShow(t *testing.T) {
	h, _, bookingID := setup(t)
	ctx := context.Background()

	h.Clock.Set(h.At(2025, time.November, 13, 13, 0))
	_, err := h.Lifecycle.NoShow(ctx, bookingID)
	assert.True(t, errors.Is(err, lifecycle.ErrTooEarlyForNoShow))

	h.Clock.Set(h.At(2025, time.November, 14, 9, 0))
	result, err := h.Lifecycle.NoShow(ctx, bookingID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoShow, result.Booking.Status)
}

func TestCancel_RecalculatesOpenInvoices(t *testing.T) {
	h, hotel, bookingID := setup(t)
	ctx := context.Background()

	checkIn, checkOut := h.Stay(2025, time.November, 20, 21)
	other := h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)

	created, err := h.Invoices.Create(ctx, &invoiceModels.CreateInvoiceRequest{
		Kind:       string(domain.InvoiceDeposit),
		BookingIDs: []int64{bookingID, other.Booking.ID},
	})
	require.NoError(t, err)
	inv := created.ID
	require.True(t, decimal.NewFromInt(750000).Equal(h.Store.Invoice(inv).Total))

	_, err = h.Lifecycle.Cancel(ctx, &lifecycle.CancelRequest{BookingID: bookingID})
	require.NoError(t, err)

	// Отменённое бронирование больше не входит в итог открытого счёта
	assert.True(t, decimal.NewFromInt(150000).Equal(h.Store.Invoice(inv).Total))
}

func TestUnknownBooking(t *testing.T) {
	h, _, _ := setup(t)

	_, err := h.Lifecycle.Confirm(context.Background(), 9999)
	assert.True(t, errors.Is(err, lifecycle.ErrBookingNotFound))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
