package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodKind BASE applies always, SPECIAL only inside [StartsAt, EndsAt]
type PeriodKind string

const (
	PeriodBase    PeriodKind = "base"
	PeriodSpecial PeriodKind = "special"
)

// TimePeriod ценовой период
type TimePeriod struct {
	ID       int64
	Name     string
	Kind     PeriodKind
	StartsAt *time.Time // nil для BASE
	EndsAt   *time.Time // nil для BASE
}

// Contains inclusive range check; BASE contains every instant
func (p *TimePeriod) Contains(at time.Time) bool {
	if p.Kind == PeriodBase {
		return true
	}
	if p.StartsAt == nil || p.EndsAt == nil {
		return false
	}
	return !at.Before(*p.StartsAt) && !at.After(*p.EndsAt)
}

// Price цена за единицу для (тип комнаты, режим аренды, период)
type Price struct {
	ID         int64
	RoomTypeID int64
	RentalMode RentalMode
	Period     TimePeriod
	UnitPrice  decimal.Decimal
}

// ResolvedPrice результат разрешения цены на момент времени
type ResolvedPrice struct {
	RoomTypeID int64
	RentalMode RentalMode
	At         time.Time
	UnitPrice  decimal.Decimal
	PeriodID   int64
	PeriodKind PeriodKind
	PeriodName string
	StartsAt   *time.Time // границы SPECIAL-периода для отображения
	EndsAt     *time.Time
}

// PickPrice выбирает цену на момент at: SPECIAL-период, содержащий at, с наибольшим ID периода,
// иначе BASE. Возвращает nil, если ни одна цена не подходит.
func PickPrice(specials []*Price, base *Price, at time.Time) *Price {
	var best *Price
	for _, p := range specials {
		if p.Period.Kind != PeriodSpecial || !p.Period.Contains(at) {
			continue
		}
		if best == nil || p.Period.ID > best.Period.ID {
			best = p
		}
	}
	if best != nil {
		return best
	}
	return base
}

// Resolved converts the picked price into a ResolvedPrice
func (p *Price) Resolved(at time.Time) *ResolvedPrice {
	return &ResolvedPrice{
		RoomTypeID: p.RoomTypeID,
		RentalMode: p.RentalMode,
		At:         at,
		UnitPrice:  p.UnitPrice,
		PeriodID:   p.Period.ID,
		PeriodKind: p.Period.Kind,
		PeriodName: p.Period.Name,
		StartsAt:   p.Period.StartsAt,
		EndsAt:     p.Period.EndsAt,
	}
}
