package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking (contract)
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusCheckedIn  BookingStatus = "checked_in"
	StatusCheckedOut BookingStatus = "checked_out"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// validTransitions допустимые переходы жизненного цикла
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn: {StatusCheckedOut},
}

// ParseBookingStatus converts a string into a known status
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch st := BookingStatus(s); st {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled, StatusNoShow:
		return st, true
	}
	return "", false
}

// CanTransitionTo returns true if the lifecycle allows moving to next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal returns true for statuses without outgoing transitions
func (s BookingStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// IsInactive returns true for cancelled and no-show bookings
func (s BookingStatus) IsInactive() bool {
	return s == StatusCancelled || s == StatusNoShow
}

// Occupies returns true if bookings in this status hold their rooms
func (s BookingStatus) Occupies() bool {
	for _, st := range OccupyingStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// CanModifyStay даты и комнаты меняются только до заселения
func (s BookingStatus) CanModifyStay() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanModifyCharges услуги и скидки можно менять и во время проживания
func (s BookingStatus) CanModifyCharges() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCheckedIn
}

// Booking represents a hotel stay contract
type Booking struct {
	ID         int64
	GuestID    int64
	GuestName  string // денормализовано из guest service
	RentalMode RentalMode
	Status     BookingStatus

	PlannedCheckIn  time.Time
	PlannedCheckOut time.Time
	ActualCheckIn   *time.Time
	ActualCheckOut  *time.Time

	// Итоги, поддерживаемые пересчётом
	RoomTotal       decimal.Decimal
	ServiceTotal    decimal.Decimal
	DiscountTotal   decimal.Decimal
	ExpectedTotal   decimal.Decimal
	DepositRate     decimal.Decimal
	DepositRequired decimal.Decimal
	DepositPaid     decimal.Decimal

	Note               *string
	CancellationReason *string
	CreatedBy          *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveWindow returns the stay interval [start, end), preferring actual
// timestamps over planned ones. Every component that needs the stay interval
// goes through this function.
func EffectiveWindow(b *Booking) (start, end time.Time) {
	start, end = b.PlannedCheckIn, b.PlannedCheckOut
	if b.ActualCheckIn != nil {
		start = *b.ActualCheckIn
	}
	if b.ActualCheckOut != nil {
		end = *b.ActualCheckOut
	}
	return start, end
}

// Overlaps half-open interval overlap: [aStart, aEnd) and [bStart, bEnd)
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// BookingsFilter фильтр списка бронирований
type BookingsFilter struct {
	GuestID         *int64
	Status          *BookingStatus
	From            *time.Time // плановый выезд после From
	To              *time.Time // плановый заезд до To
	IncludeInactive bool
	Limit           uint64
	Offset          uint64
}

// BookingTotals результат пересчёта бронирования
type BookingTotals struct {
	RoomTotal       decimal.Decimal
	ServiceTotal    decimal.Decimal
	DiscountTotal   decimal.Decimal
	ExpectedTotal   decimal.Decimal
	DepositRequired decimal.Decimal
}

// ApplyTotals копирует итоги в бронирование
func (b *Booking) ApplyTotals(t BookingTotals) {
	b.RoomTotal = t.RoomTotal
	b.ServiceTotal = t.ServiceTotal
	b.DiscountTotal = t.DiscountTotal
	b.ExpectedTotal = t.ExpectedTotal
	b.DepositRequired = t.DepositRequired
}

// GrossTotal сумма проживания и услуг до скидки
func (b *Booking) GrossTotal() decimal.Decimal {
	return b.RoomTotal.Add(b.ServiceTotal)
}

var (
	// ErrIllegalTransition переход запрещён жизненным циклом
	ErrIllegalTransition = errors.New("booking: illegal status transition")

	// ErrStayLocked даты и комнаты нельзя менять после заселения
	ErrStayLocked = errors.New("booking: stay is locked")
)

// Transition переводит бронирование в next или возвращает ConflictError(ILLEGAL_TRANSITION).
// Из CANCELLED и NO_SHOW переходов нет.
func (b *Booking) Transition(next BookingStatus) error {
	if !b.Status.CanTransitionTo(next) {
		return NewConflictError(CodeIllegalTransition, ErrIllegalTransition, nil,
			"booking %d cannot move from %s to %s", b.ID, b.Status, next)
	}
	b.Status = next
	return nil
}

// EnsureStayModifiable даты и комнаты меняются только в PENDING и CONFIRMED
func (b *Booking) EnsureStayModifiable() error {
	switch {
	case b.Status.IsInactive():
		return NewConflictError(CodeIllegalTransition, ErrIllegalTransition, nil,
			"booking %d is %s", b.ID, b.Status)
	case !b.Status.CanModifyStay():
		return NewConflictError(CodeStayLocked, ErrStayLocked, nil,
			"booking %d is %s, dates and rooms are locked", b.ID, b.Status)
	}
	return nil
}

// EnsureChargesModifiable услуги и скидки меняются до выезда
func (b *Booking) EnsureChargesModifiable() error {
	switch {
	case b.Status.IsInactive():
		return NewConflictError(CodeIllegalTransition, ErrIllegalTransition, nil,
			"booking %d is %s", b.ID, b.Status)
	case !b.Status.CanModifyCharges():
		return NewConflictError(CodeStayLocked, ErrStayLocked, nil,
			"booking %d is %s, charges are locked", b.ID, b.Status)
	}
	return nil
}
