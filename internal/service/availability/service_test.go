package availability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/service/availability"
	holdsService "github.com/m04kA/SMC-HotelService/internal/service/holds"
	invoiceModels "github.com/m04kA/SMC-HotelService/internal/service/invoices/models"
	lifecycleService "github.com/m04kA/SMC-HotelService/internal/service/lifecycle"
	"github.com/m04kA/SMC-HotelService/internal/testutil/harness"
	"github.com/m04kA/SMC-HotelService/pkg/ptr"
)

func setup(t *testing.T) (*harness.Harness, *harness.Hotel) {
	h := harness.New(t, time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC))
	return h, h.StandardHotel()
}

func TestAvailableCount_ConfirmedBookingTakesOneRoom(t *testing.T) {
	h, hotel := setup(t)
	ctx := context.Background()

	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	booking := h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)
	h.PayDeposit(t, booking.Booking.ID)
	require.Equal(t, domain.StatusConfirmed, h.Store.Booking(booking.Booking.ID).Status)

	avail, err := h.Availability.AvailableCount(ctx, availability.Query{
		RoomTypeID: hotel.RoomType.ID,
		From:       h.At(2025, time.November, 14, 14, 0),
		To:         h.At(2025, time.November, 16, 12, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, avail.TotalRooms)
	assert.Equal(t, 1, avail.OccupiedRooms)
	assert.Equal(t, 2, avail.Available)
}

func TestAvailableCount_Window(t *testing.T) {
	h, hotel := setup(t)
	ctx := context.Background()

	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID, hotel.Rooms[1].ID)

	tests := []struct {
		name     string
		from, to time.Time
		expected int
	}{
		{"inside", h.At(2025, time.November, 13, 20, 0), h.At(2025, time.November, 14, 8, 0), 1},
		{"ends at check-in", h.At(2025, time.November, 12, 14, 0), checkIn, 3},
		{"starts at check-out", checkOut, h.At(2025, time.November, 16, 12, 0), 3},
		{"covers the stay", h.At(2025, time.November, 10, 0, 0), h.At(2025, time.November, 20, 0, 0), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avail, err := h.Availability.AvailableCount(ctx, availability.Query{RoomTypeID: hotel.RoomType.ID, From: tt.from, To: tt.to})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, avail.Available)
		})
	}
}

func TestAvailableCount_InactiveBookingsFreeRooms(t *testing.T) {
	h, hotel := setup(t)
	ctx := context.Background()

	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	booking := h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)

	_, err := h.Lifecycle.Cancel(ctx, &lifecycleService.CancelRequest{BookingID: booking.Booking.ID, Reason: ptr.Ptr("guest request")})
	require.NoError(t, err)

	avail, err := h.Availability.AvailableCount(ctx, availability.Query{RoomTypeID: hotel.RoomType.ID, From: checkIn, To: checkOut})
	require.NoError(t, err)
	assert.Equal(t, 3, avail.Available)
}

func TestAvailableCount_Holds(t *testing.T) {
	h, hotel := setup(t)
	ctx := context.Background()

	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	booking := h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)

	inv, err := h.Invoices.Create(ctx, &invoiceModels.CreateInvoiceRequest{
		Kind:       string(domain.InvoiceDeposit),
		BookingIDs: []int64{booking.Booking.ID},
	})
	require.NoError(t, err)

	hold, err := h.Holds.Create(ctx, &holdsService.CreateHoldRequest{
		RoomTypeID: hotel.RoomType.ID,
		Quantity:   1,
		From:       checkIn,
		To:         checkOut,
		InvoiceID:  &inv.ID,
	})
	require.NoError(t, err)

	q := availability.Query{RoomTypeID: hotel.RoomType.ID, From: checkIn, To: checkOut}
	count := func() *domain.RoomTypeAvailability {
		avail, err := h.Availability.AvailableCount(ctx, q)
		require.NoError(t, err)
		return avail
	}

	avail := count()
	assert.Equal(t, 1, avail.HeldRooms)
	assert.Equal(t, 1, avail.Available)

	excluded := q
	excluded.ExcludeHoldID = &hold.ID
	own, err := h.Availability.AvailableCount(ctx, excluded)
	require.NoError(t, err)
	assert.Equal(t, 2, own.Available, "hold being consumed is not counted")

	// Оплата депозита: удержание переходит в allocated и перестаёт расходовать ёмкость
	_, err = h.Invoices.Pay(ctx, &invoiceModels.PaymentRequest{InvoiceID: inv.ID, PaymentRef: "PAY-1"})
	require.NoError(t, err)
	assert.Equal(t, domain.HoldAllocated, h.Store.Hold(hold.ID).Status)

	avail = count()
	assert.Equal(t, 0, avail.HeldRooms)
	assert.Equal(t, 2, avail.Available)
}

func TestAvailableCount_ReleasedHoldFreesCapacity(t *testing.T) {
	h, hotel := setup(t)
	ctx := context.Background()

	from, to := h.Stay(2025, time.November, 13, 15)
	hold, err := h.Holds.Create(ctx, &holdsService.CreateHoldRequest{RoomTypeID: hotel.RoomType.ID, Quantity: 3, From: from, To: to})
	require.NoError(t, err)

	q := availability.Query{RoomTypeID: hotel.RoomType.ID, From: from, To: to}
	err = h.Availability.EnsureCapacity(ctx, "test", q, 1)
	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeNoCapacity, ce.Code)
	assert.True(t, errors.Is(err, availability.ErrNoCapacity))

	_, err = h.Holds.Release(ctx, hold.ID)
	require.NoError(t, err)
	_, err = h.Holds.Release(ctx, hold.ID)
	require.NoError(t, err, "release is idempotent")

	require.NoError(t, h.Availability.EnsureCapacity(ctx, "test", q, 3))
}

func TestAvailableCount_Errors(t *testing.T) {
	h, hotel := setup(t)
	ctx := context.Background()
	from := h.At(2025, time.November, 13, 14, 0)

	_, err := h.Availability.AvailableCount(ctx, availability.Query{RoomTypeID: hotel.RoomType.ID, From: from, To: from})
	assert.True(t, errors.Is(err, availability.ErrInvalidWindow))
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = h.Availability.AvailableCount(ctx, availability.Query{RoomTypeID: 999, From: from, To: from.Add(time.Hour)})
	assert.True(t, errors.Is(err, availability.ErrRoomTypeNotFound))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCheckRoomConflict(t *testing.T) {
	h, hotel := setup(t)
	ctx := context.Background()

	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	booking := h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)
	q := availability.Query{From: h.At(2025, time.November, 14, 14, 0), To: h.At(2025, time.November, 16, 12, 0)}

	conflict, err := h.Availability.CheckRoomConflict(ctx, []int64{hotel.Rooms[1].ID, hotel.Rooms[0].ID}, nil, q)
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, hotel.Rooms[0].ID, conflict.RoomID)
	assert.Equal(t, "101", conflict.RoomName)
	assert.Equal(t, booking.Booking.ID, conflict.BookingID)
	assert.Equal(t, checkIn, conflict.From)
	assert.Equal(t, checkOut, conflict.To)

	conflict, err = h.Availability.CheckRoomConflict(ctx, []int64{hotel.Rooms[0].ID}, &booking.Booking.ID, q)
	require.NoError(t, err)
	assert.Nil(t, conflict, "own booking is excluded")

	conflict, err = h.Availability.CheckRoomConflict(ctx, nil, nil, q)
	require.NoError(t, err)
	assert.Nil(t, conflict)
}
