package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func nightLine(roomID int64, lineNo int, price int64, status LineStatus) *UsageLine {
	l := &UsageLine{BookingID: 1, RoomID: roomID, LineNo: lineNo, Unit: UnitNight, Quantity: 1, Status: status}
	l.Reprice(decimal.NewFromInt(price))
	return l
}

func TestComputeBookingTotals_DepositFormula(t *testing.T) {
	lines := []*UsageLine{
		nightLine(1, 1, 500000, LineActive),
		nightLine(1, 2, 500000, LineActive),
		nightLine(1, 3, 500000, LineCancelled),
	}
	charges := []*ServiceCharge{
		{RoomID: 1, LineNo: 1, ServiceID: 3, ChargeNo: 1, Quantity: 2, UnitPrice: dec("45000"), Total: dec("90000"), Status: ChargeActive},
		{RoomID: 1, LineNo: 2, ServiceID: 3, ChargeNo: 1, Quantity: 1, UnitPrice: dec("45000"), Total: dec("45000"), Status: ChargeCancelled},
	}

	totals := ComputeBookingTotals(lines, charges, dec("100000"), dec("0.3"), 0)

	assert.True(t, dec("1000000").Equal(totals.RoomTotal), "cancelled lines are skipped")
	assert.True(t, dec("90000").Equal(totals.ServiceTotal), "cancelled charges are skipped")
	assert.True(t, dec("990000").Equal(totals.ExpectedTotal))
	assert.True(t, dec("297000").Equal(totals.DepositRequired))
}

func TestComputeBookingTotals_Rounding(t *testing.T) {
	lines := []*UsageLine{nightLine(1, 1, 333335, LineActive)}

	totals := ComputeBookingTotals(lines, nil, decimal.Zero, dec("0.3"), 0)
	// 333335 * 0.3 = 100000.5 -> half away from zero
	assert.True(t, dec("100001").Equal(totals.DepositRequired), "got %s", totals.DepositRequired)

	totals = ComputeBookingTotals(lines, nil, decimal.Zero, dec("0.3"), 2)
	assert.True(t, dec("100000.5").Equal(totals.DepositRequired), "got %s", totals.DepositRequired)
}

func TestComputeBookingTotals_DiscountNeverNegative(t *testing.T) {
	lines := []*UsageLine{nightLine(1, 1, 100000, LineActive)}

	totals := ComputeBookingTotals(lines, nil, dec("250000"), dec("0.5"), 0)
	assert.True(t, totals.ExpectedTotal.IsZero())
	assert.True(t, totals.DepositRequired.IsZero())
}

func TestComputeBookingTotals_Idempotent(t *testing.T) {
	lines := []*UsageLine{nightLine(1, 1, 500000, LineActive), nightLine(2, 1, 700000, LineActive)}

	first := ComputeBookingTotals(lines, nil, dec("10000"), dec("0.3"), 0)
	second := ComputeBookingTotals(lines, nil, dec("10000"), dec("0.3"), 0)
	assert.Equal(t, first, second)
}

func TestComputeInvoiceTotals(t *testing.T) {
	b1 := &Booking{Status: StatusConfirmed, RoomTotal: dec("1000000"), ServiceTotal: dec("90000"), DiscountTotal: dec("100000"),
		DepositRequired: dec("297000"), DepositPaid: dec("297000")}
	b2 := &Booking{Status: StatusPending, RoomTotal: dec("500000"), DepositRequired: dec("150000")}
	cancelled := &Booking{Status: StatusCancelled, RoomTotal: dec("999999"), DepositRequired: dec("300000")}

	t.Run("deposit", func(t *testing.T) {
		totals := ComputeInvoiceTotals(InvoiceDeposit, dec("5000"), []*Booking{b1, b2, cancelled})
		assert.True(t, dec("447000").Equal(totals.Total))
		assert.True(t, dec("452000").Equal(totals.FinalAmount))
		assert.True(t, totals.DepositDeducted.IsZero())
	})

	t.Run("final", func(t *testing.T) {
		totals := ComputeInvoiceTotals(InvoiceFinal, decimal.Zero, []*Booking{b1, b2, cancelled})
		assert.True(t, dec("1590000").Equal(totals.Total))
		assert.True(t, dec("100000").Equal(totals.Discount))
		assert.True(t, dec("297000").Equal(totals.DepositDeducted))
		assert.True(t, dec("1193000").Equal(totals.FinalAmount))
	})

	t.Run("final never negative", func(t *testing.T) {
		paid := &Booking{Status: StatusConfirmed, RoomTotal: dec("100000"), DepositPaid: dec("300000")}
		totals := ComputeInvoiceTotals(InvoiceFinal, decimal.Zero, []*Booking{paid})
		assert.True(t, totals.FinalAmount.IsZero())
	})
}

func TestLineTotal_Hours(t *testing.T) {
	start := at("2025-11-13T09:00:00Z")
	end := start.Add(2*time.Hour + 10*time.Minute)

	total := LineTotal(UnitHour, dec("120000"), 1, &start, &end)
	assert.True(t, dec("360000").Equal(total), "partial hour is billed in full")

	assert.Equal(t, 1, BillableHours(start, start.Add(5*time.Minute)))
}

func TestNights(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)

	checkIn := time.Date(2025, 11, 13, 14, 0, 0, 0, loc)
	checkOut := time.Date(2025, 11, 15, 12, 0, 0, 0, loc)

	nights := Nights(checkIn, checkOut, loc)
	require.Len(t, nights, 2)
	assert.Equal(t, time.Date(2025, 11, 13, 0, 0, 0, 0, loc), nights[0])
	assert.Equal(t, time.Date(2025, 11, 14, 0, 0, 0, 0, loc), nights[1])

	assert.Empty(t, Nights(checkIn, checkIn.Add(3*time.Hour), loc), "same day")
}

func TestNextLineNoAndChargeNo(t *testing.T) {
	lines := []*UsageLine{nightLine(1, 1, 1, LineActive), nightLine(1, 3, 1, LineCancelled), nightLine(2, 1, 1, LineActive)}
	assert.Equal(t, 4, NextLineNo(lines, 1), "cancelled lines keep their numbers")
	assert.Equal(t, 2, NextLineNo(lines, 2))
	assert.Equal(t, 1, NextLineNo(lines, 9))

	key := LineKey{BookingID: 1, RoomID: 1, LineNo: 1}
	charges := []*ServiceCharge{
		{BookingID: 1, RoomID: 1, LineNo: 1, ServiceID: 3, ChargeNo: 2},
		{BookingID: 1, RoomID: 1, LineNo: 2, ServiceID: 3, ChargeNo: 5},
	}
	assert.Equal(t, 3, NextChargeNo(charges, key, 3))
	assert.Equal(t, 1, NextChargeNo(charges, key, 4))
}

func TestRoomIDsOf_SkipsCancelled(t *testing.T) {
	lines := []*UsageLine{nightLine(2, 1, 1, LineActive), nightLine(1, 1, 1, LineCancelled), nightLine(2, 2, 1, LineActive)}
	assert.Equal(t, []int64{2}, RoomIDsOf(lines))
}
