package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// LineStatus статус строки использования
type LineStatus string

const (
	LineActive    LineStatus = "active"
	LineCancelled LineStatus = "cancelled"
)

// UsageLine one billable room-night or room-hour span of a booking.
// Primary key: (BookingID, RoomID, LineNo); LineNo is sequential per (booking, room).
type UsageLine struct {
	BookingID int64
	RoomID    int64
	LineNo    int
	Unit      UsageUnit

	NightDate *time.Time // для NIGHT: календарная дата ночи (полночь в часовом поясе отеля)
	StartAt   *time.Time // для HOUR
	EndAt     *time.Time // для HOUR

	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
	Status    LineStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LineKey составной ключ строки
type LineKey struct {
	BookingID int64
	RoomID    int64
	LineNo    int
}

func (l *UsageLine) Key() LineKey {
	return LineKey{BookingID: l.BookingID, RoomID: l.RoomID, LineNo: l.LineNo}
}

func (l *UsageLine) IsActive() bool {
	return l.Status == LineActive
}

// Reprice sets a new unit price and recomputes the total
func (l *UsageLine) Reprice(unitPrice decimal.Decimal) {
	l.UnitPrice = unitPrice
	l.LineTotal = LineTotal(l.Unit, unitPrice, l.Quantity, l.StartAt, l.EndAt)
}

// LineTotal NIGHT: price * quantity; HOUR: price * billable hours (rounded up).
func LineTotal(unit UsageUnit, unitPrice decimal.Decimal, quantity int, start, end *time.Time) decimal.Decimal {
	if unit == UnitHour && start != nil && end != nil {
		return unitPrice.Mul(decimal.NewFromInt(int64(BillableHours(*start, *end))))
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// BillableHours whole hours in [start, end), rounded up, at least 1
func BillableHours(start, end time.Time) int {
	hours := int(math.Ceil(end.Sub(start).Hours()))
	if hours < 1 {
		return 1
	}
	return hours
}

// DateOf returns local midnight of t in loc
func DateOf(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// DaysBetween calendar days from a to b (both local midnights)
func DaysBetween(a, b time.Time) int {
	// Через UTC, чтобы переход на летнее время не давал 23/25 часов
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// Nights returns the night dates of a stay: every local date in
// [date(checkIn), date(checkOut)).
func Nights(checkIn, checkOut time.Time, loc *time.Location) []time.Time {
	first := DateOf(checkIn, loc)
	n := DaysBetween(first, DateOf(checkOut, loc))
	nights := make([]time.Time, 0, max(n, 0))
	for i := 0; i < n; i++ {
		nights = append(nights, first.AddDate(0, 0, i))
	}
	return nights
}

// SameDate compares two local dates
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// RoomIDsOf distinct rooms of active lines, in first-seen order
func RoomIDsOf(lines []*UsageLine) []int64 {
	seen := make(map[int64]struct{})
	ids := make([]int64, 0)
	for _, l := range lines {
		if !l.IsActive() {
			continue
		}
		if _, ok := seen[l.RoomID]; ok {
			continue
		}
		seen[l.RoomID] = struct{}{}
		ids = append(ids, l.RoomID)
	}
	return ids
}

// NextLineNo returns the next free line number for the room
func NextLineNo(lines []*UsageLine, roomID int64) int {
	maxNo := 0
	for _, l := range lines {
		if l.RoomID == roomID && l.LineNo > maxNo {
			maxNo = l.LineNo
		}
	}
	return maxNo + 1
}

// RoomOccupancy комната, занятая бронированием (строка кандидата для проверки пересечений)
type RoomOccupancy struct {
	RoomID     int64
	RoomName   string
	RoomTypeID int64
	Booking    *Booking
}

// OccupancyFilter выборка занятых комнат
type OccupancyFilter struct {
	RoomIDs          []int64
	RoomTypeID       *int64
	ExcludeBookingID *int64
	From             time.Time
	To               time.Time
}
