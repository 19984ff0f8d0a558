package domain

// Time format constants
const (
	TimeFormat     = "15:04"      // HH:MM
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04:05Z07:00"
)

// Default hotel policy, used when hotel_settings has no row
const (
	DefaultDepositRate          = "0.3"
	DefaultStandardCheckIn      = "14:00"
	DefaultStandardCheckOut     = "12:00"
	DefaultEarlyCheckInGrace    = "13:45"
	DefaultEarliestEarlyCheckIn = "06:00"
	DefaultMoneyScale           = 0
	DefaultTimezone             = "Asia/Ho_Chi_Minh"
)

// Business validation constants
const (
	MaxNoteLength               = 500
	MaxCancellationReasonLength = 500
	MaxStayNights               = 90
	MaxServiceQuantity          = 1000
	MaxCalendarDays             = 366
)

// OccupyingStatuses статусы бронирований, которые занимают комнаты
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCheckedIn,
}

// InactiveStatuses статусы, после которых бронирование не изменяется
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}
