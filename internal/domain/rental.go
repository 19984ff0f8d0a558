package domain

// RentalMode pricing unit of a booking. Never derived from labels.
type RentalMode string

const (
	RentalModeNight RentalMode = "night"
	RentalModeHour  RentalMode = "hour"
)

// UsageUnit unit of a usage line
type UsageUnit string

const (
	UnitNight UsageUnit = "NIGHT"
	UnitHour  UsageUnit = "HOUR"
)

// ParseRentalMode converts a request value into a RentalMode
func ParseRentalMode(s string) (RentalMode, bool) {
	switch m := RentalMode(s); m {
	case RentalModeNight, RentalModeHour:
		return m, true
	}
	return "", false
}

// Unit returns the usage line unit for the mode
func (m RentalMode) Unit() UsageUnit {
	if m == RentalModeHour {
		return UnitHour
	}
	return UnitNight
}
