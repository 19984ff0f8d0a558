package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountKind тип скидки акции
type DiscountKind string

const (
	DiscountPercent DiscountKind = "percent"
	DiscountFixed   DiscountKind = "fixed"
)

// Promotion акция из каталога
type Promotion struct {
	ID          int64
	Code        string
	Name        string
	Kind        DiscountKind
	Value       decimal.Decimal // процент (10 = 10%) или фиксированная сумма
	MaxDiscount *decimal.Decimal
	ValidFrom   *time.Time
	ValidTo     *time.Time
	Active      bool
}

// IsApplicableAt акция активна и действует на момент at
func (p *Promotion) IsApplicableAt(at time.Time) bool {
	if !p.Active {
		return false
	}
	if p.ValidFrom != nil && at.Before(*p.ValidFrom) {
		return false
	}
	if p.ValidTo != nil && at.After(*p.ValidTo) {
		return false
	}
	return true
}

// ComputeDiscount discount for the given gross total, never above the total
func (p *Promotion) ComputeDiscount(gross decimal.Decimal, scale int32) decimal.Decimal {
	var discount decimal.Decimal
	switch p.Kind {
	case DiscountPercent:
		discount = gross.Mul(p.Value).Div(decimal.NewFromInt(100))
	case DiscountFixed:
		discount = p.Value
	}
	if p.MaxDiscount != nil && discount.GreaterThan(*p.MaxDiscount) {
		discount = *p.MaxDiscount
	}
	if discount.GreaterThan(gross) {
		discount = gross
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return RoundMoney(discount, scale)
}

// PromotionApplication акция, применённая к бронированию (не более одной).
// Сумма скидки фиксируется в момент применения.
type PromotionApplication struct {
	BookingID     int64
	PromotionID   int64
	PromotionCode string
	Discount      decimal.Decimal
	AppliedAt     time.Time
}
