package apply_early_checkin_fee_test

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
	"github.com/m04kA/SMC-HotelService/internal/usecase/adjust_checkout"
	"github.com/m04kA/SMC-HotelService/internal/usecase/apply_early_checkin_fee"
	"github.com/m04kA/SMC-HotelService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-HotelService/pkg/ptr"
)

type fixture struct {
	h         *harness.Harness
	hotel     *harness.Hotel
	bookingID int64
	fee       *domain.Service
}

func setup(t *testing.T) *fixture {
	h := harness.New(t, time.Date(2025, 11, 13, 0, 0, 0, 0, time.UTC))
	hotel := h.StandardHotel()
	fee := h.Store.AddService("EARLY_CHECKIN", 50000)

	settings, err := h.Settings.Current(context.Background())
	require.NoError(t, err)
	settings.EarlyCheckInServiceID = &fee.ID
	h.Store.SetSettings(settings)

	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	booking := h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID, hotel.Rooms[1].ID)
	return &fixture{h: h, hotel: hotel, bookingID: booking.Booking.ID, fee: fee}
}

func (f *fixture) arrive(hour, minute int) (*apply_early_checkin_fee.Response, error) {
	f.h.Clock.Set(f.h.At(2025, time.November, 13, 13, 59))
	return f.h.EarlyFee.Execute(context.Background(), &apply_early_checkin_fee.Request{
		BookingID: f.bookingID,
		ArrivedAt: ptr.Ptr(f.h.At(2025, time.November, 13, hour, minute)),
	})
}

func TestEarlyHours(t *testing.T) {
	h := harness.New(t, time.Date(2025, 11, 13, 0, 0, 0, 0, time.UTC))
	settings, err := h.Settings.Current(context.Background())
	require.NoError(t, err)
	planned := h.At(2025, time.November, 13, 14, 0)

	tests := []struct {
		name     string
		arrived  time.Time
		expected int
		err      error
	}{
		{"partial hours round up", h.At(2025, time.November, 13, 10, 0), 4, nil},
		{"exactly one hour", h.At(2025, time.November, 13, 12, 45), 1, nil},
		{"earliest allowed", h.At(2025, time.November, 13, 6, 0), 8, nil},
		{"before earliest", h.At(2025, time.November, 13, 5, 59), 0, apply_early_checkin_fee.ErrTooEarly},
		{"previous day", h.At(2025, time.November, 12, 22, 0), 0, apply_early_checkin_fee.ErrTooEarly},
		{"at grace", h.At(2025, time.November, 13, 13, 45), 0, apply_early_checkin_fee.ErrWithinGrace},
		{"after grace", h.At(2025, time.November, 13, 13, 50), 0, apply_early_checkin_fee.ErrWithinGrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, err := apply_early_checkin_fee.EarlyHours(tt.arrived, planned, settings)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, hours)
		})
	}
}

func TestExecute_ChargesEveryRoom(t *testing.T) {
	f := setup(t)

	resp, err := f.arrive(10, 0)
	require.NoError(t, err)

	assert.Equal(t, 4, resp.HoursEarly)
	assert.True(t, decimal.NewFromInt(400000).Equal(resp.Fee), "4h x 50 000 x 2 rooms, got %s", resp.Fee)
	require.Len(t, resp.Charges, 2)
	for _, c := range resp.Charges {
		assert.Equal(t, f.fee.ID, c.ServiceID)
		assert.Equal(t, domain.OriginAuto, c.Origin)
		assert.Equal(t, 2, c.LineNo, "fee goes to the latest line of the room")
	}
	assert.True(t, decimal.NewFromInt(400000).Equal(resp.Booking.ServiceTotal))
	assert.True(t, decimal.NewFromInt(2400000).Equal(resp.Booking.ExpectedTotal))
}

func TestExecute_RepeatedArrivalOnlyRaisesHours(t *testing.T) {
	f := setup(t)

	_, err := f.arrive(10, 0)
	require.NoError(t, err)

	later, err := f.arrive(11, 30)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(400000).Equal(later.Fee), "fee does not shrink")

	earlier, err := f.arrive(8, 0)
	require.NoError(t, err)
	assert.Equal(t, 6, earlier.HoursEarly)
	assert.True(t, decimal.NewFromInt(600000).Equal(earlier.Fee))

	charges := f.h.Store.ChargesOf(f.bookingID)
	require.Len(t, charges, 2, "charges are updated in place")
	for _, c := range charges {
		assert.Equal(t, 6, c.Quantity)
	}
}

func TestExecute_ExtendedStayKeepsOneFeePerRoom(t *testing.T) {
	f := setup(t)

	_, err := f.arrive(10, 0)
	require.NoError(t, err)

	_, err = f.h.AdjustCheckOut.Execute(context.Background(), &adjust_checkout.Request{
		BookingID:   f.bookingID,
		NewCheckOut: f.h.At(2025, time.November, 16, 12, 0),
	})
	require.NoError(t, err)

	resp, err := f.arrive(10, 0)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(400000).Equal(resp.Fee), "got %s", resp.Fee)

	active := 0
	for _, c := range f.h.Store.ChargesOf(f.bookingID) {
		if c.IsActive() && c.ServiceID == f.fee.ID {
			active++
			assert.Equal(t, 2, c.LineNo, "fee stays on the line it was first charged to")
			assert.Equal(t, 4, c.Quantity)
		}
	}
	assert.Equal(t, 2, active, "one fee charge per room")
	assert.True(t, decimal.NewFromInt(400000).Equal(resp.Booking.ServiceTotal))
}

func TestExecute_Rejections(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.arrive(5, 0)
	assert.True(t, errors.Is(err, apply_early_checkin_fee.ErrTooEarly))

	_, err = f.arrive(13, 50)
	assert.True(t, errors.Is(err, apply_early_checkin_fee.ErrWithinGrace))

	f.h.Clock.Set(f.h.At(2025, time.November, 13, 9, 0))
	_, err = f.h.EarlyFee.Execute(ctx, &apply_early_checkin_fee.Request{
		BookingID: f.bookingID,
		ArrivedAt: ptr.Ptr(f.h.At(2025, time.November, 13, 10, 0)),
	})
	assert.True(t, errors.Is(err, apply_early_checkin_fee.ErrInvalidInput), "arrival in the future")

	_, err = f.h.EarlyFee.Execute(ctx, &apply_early_checkin_fee.Request{BookingID: 9999})
	assert.True(t, errors.Is(err, apply_early_checkin_fee.ErrBookingNotFound))

	start := f.h.At(2025, time.November, 14, 9, 0)
	hourly, err := f.h.CreateBooking.Execute(ctx, &create_booking.Request{
		GuestID:    1,
		RentalMode: string(domain.RentalModeHour),
		CheckIn:    start,
		CheckOut:   start.Add(2 * time.Hour),
		RoomIDs:    []int64{f.hotel.Rooms[2].ID},
	})
	require.NoError(t, err)
	_, err = f.h.EarlyFee.Execute(ctx, &apply_early_checkin_fee.Request{BookingID: hourly.Booking.ID})
	assert.True(t, errors.Is(err, apply_early_checkin_fee.ErrNotNightly))
}

func TestExecute_ServiceNotConfigured(t *testing.T) {
	h := harness.New(t, time.Date(2025, 11, 13, 0, 0, 0, 0, time.UTC))
	hotel := h.StandardHotel()
	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	booking := h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)

	_, err := h.EarlyFee.Execute(context.Background(), &apply_early_checkin_fee.Request{BookingID: booking.Booking.ID})
	assert.True(t, errors.Is(err, apply_early_checkin_fee.ErrFeeServiceMissing))
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}
