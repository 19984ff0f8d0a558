package domain

import "github.com/shopspring/decimal"

// RoundMoney rounds half away from zero to scale decimal places
func RoundMoney(d decimal.Decimal, scale int32) decimal.Decimal {
	return d.Round(scale)
}

// ComputeBookingTotals
//
//	expected = max(0, Σ active lines + Σ active charges - discount)
//	deposit  = round(expected * rate)
func ComputeBookingTotals(lines []*UsageLine, charges []*ServiceCharge, discount, rate decimal.Decimal, scale int32) BookingTotals {
	var t BookingTotals
	for _, l := range lines {
		if l.IsActive() {
			t.RoomTotal = t.RoomTotal.Add(l.LineTotal)
		}
	}
	for _, c := range charges {
		if c.IsActive() {
			t.ServiceTotal = t.ServiceTotal.Add(c.Total)
		}
	}
	t.DiscountTotal = discount
	t.ExpectedTotal = t.RoomTotal.Add(t.ServiceTotal).Sub(discount)
	if t.ExpectedTotal.IsNegative() {
		t.ExpectedTotal = decimal.Zero
	}
	t.DepositRequired = RoundMoney(t.ExpectedTotal.Mul(rate), scale)
	return t
}
