package remove_room_test

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
	invoiceModels "github.com/m04kA/SMC-HotelService/internal/service/invoices/models"
	"github.com/m04kA/SMC-HotelService/internal/service/lifecycle"
	"github.com/m04kA/SMC-HotelService/internal/testutil/harness"
	"github.com/m04kA/SMC-HotelService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-HotelService/internal/usecase/remove_room"
)

func setup(t *testing.T) (*harness.Harness, *harness.Hotel, *create_booking.Response) {
	h := harness.New(t, time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC))
	hotel := h.StandardHotel()

	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	return h, hotel, h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID, hotel.Rooms[1].ID)
}

func TestRemoveRoom_DeletesUnbilledLines(t *testing.T) {
	h, hotel, booking := setup(t)

	resp, err := h.RemoveRoom.Execute(context.Background(), &remove_room.Request{
		BookingID: booking.Booking.ID,
		RoomID:    hotel.Rooms[1].ID,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.RemovedLines)
	assert.Len(t, h.Store.Lines(booking.Booking.ID), 2, "lines without charges are deleted")
	assert.True(t, decimal.NewFromInt(1000000).Equal(resp.Booking.ExpectedTotal))
	assert.True(t, decimal.NewFromInt(300000).Equal(resp.Booking.DepositRequired))

	_, err = h.RemoveRoom.Execute(context.Background(), &remove_room.Request{
		BookingID: booking.Booking.ID,
		RoomID:    hotel.Rooms[1].ID,
	})
	assert.True(t, errors.Is(err, remove_room.ErrRoomNotInBooking), "got %v", err)
}

func TestRemoveRoom_CancelsChargedLines(t *testing.T) {
	h, hotel, booking := setup(t)
	ctx := context.Background()
	breakfast := h.Store.AddService("BREAKFAST", 45000)

	_, err := h.Charges.Add(ctx, &charges.AddChargeRequest{
		BookingID: booking.Booking.ID,
		RoomID:    hotel.Rooms[1].ID,
		ServiceID: breakfast.ID,
		Quantity:  2,
	})
	require.NoError(t, err)

	resp, err := h.RemoveRoom.Execute(ctx, &remove_room.Request{BookingID: booking.Booking.ID, RoomID: hotel.Rooms[1].ID})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.RemovedLines)

	// Строка с начислением отменяется, строка без начислений удаляется
	lines := h.Store.Lines(booking.Booking.ID)
	require.Len(t, lines, 3)
	assert.Equal(t, domain.LineCancelled, lines[2].Status)
	assert.Equal(t, 2, lines[2].LineNo)

	for _, c := range h.Store.ChargesOf(booking.Booking.ID) {
		assert.Equal(t, domain.ChargeCancelled, c.Status)
	}
	assert.True(t, resp.Booking.ServiceTotal.IsZero())
	assert.True(t, decimal.NewFromInt(1000000).Equal(resp.Booking.ExpectedTotal))
}

func TestRemoveRoom_BilledLinesAreCancelled(t *testing.T) {
	h, hotel, booking := setup(t)
	ctx := context.Background()

	inv, err := h.Invoices.Create(ctx, &invoiceModels.CreateInvoiceRequest{
		Kind:       string(domain.InvoiceDeposit),
		BookingIDs: []int64{booking.Booking.ID},
	})
	require.NoError(t, err)

	_, err = h.RemoveRoom.Execute(ctx, &remove_room.Request{BookingID: booking.Booking.ID, RoomID: hotel.Rooms[1].ID})
	require.NoError(t, err)

	assert.Len(t, h.Store.Lines(booking.Booking.ID), 4, "billed lines keep their history")
	assert.Len(t, h.Store.ActiveLines(booking.Booking.ID), 2)

	// Открытый счёт пересчитан по оставшейся комнате
	assert.True(t, decimal.NewFromInt(300000).Equal(h.Store.Invoice(inv.ID).FinalAmount))
}

func TestRemoveRoom_Errors(t *testing.T) {
	h, hotel, booking := setup(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		req      *remove_room.Request
		expected error
	}{
		{"zero ids", &remove_room.Request{}, remove_room.ErrInvalidInput},
		{"unknown booking", &remove_room.Request{BookingID: 9999, RoomID: hotel.Rooms[0].ID}, remove_room.ErrBookingNotFound},
		{"room not in booking", &remove_room.Request{BookingID: booking.Booking.ID, RoomID: hotel.Rooms[2].ID}, remove_room.ErrRoomNotInBooking},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.RemoveRoom.Execute(ctx, tt.req)
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
		})
	}

	_, err := h.Lifecycle.Cancel(ctx, &lifecycle.CancelRequest{BookingID: booking.Booking.ID})
	require.NoError(t, err)

	_, err = h.RemoveRoom.Execute(ctx, &remove_room.Request{BookingID: booking.Booking.ID, RoomID: hotel.Rooms[0].ID})
	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeIllegalTransition, ce.Code)
}
