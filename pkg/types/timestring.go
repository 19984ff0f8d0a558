package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeString некорректный формат времени суток
var ErrInvalidTimeString = errors.New("invalid time string format")

const timeLayout = "15:04"

// TimeString время суток в формате HH:MM (например, "14:00")
type TimeString string

// NewTimeStringFromString создает TimeString с проверкой формата
func NewTimeStringFromString(s string) (TimeString, error) {
	t := TimeString(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// MustTimeString паникует при некорректном формате (для констант и тестов)
func MustTimeString(s string) TimeString {
	t, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Validate проверяет формат HH:MM
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

func (t TimeString) IsZero() bool {
	return t == ""
}

func (t TimeString) String() string {
	return string(t)
}

// Clock возвращает часы и минуты
func (t TimeString) Clock() (hour, minute int) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, 0
	}
	return parsed.Hour(), parsed.Minute()
}

// Minutes количество минут от начала суток
func (t TimeString) Minutes() int {
	h, m := t.Clock()
	return h*60 + m
}

// On возвращает момент времени t в календарный день date (в часовом поясе date)
func (t TimeString) On(date time.Time) time.Time {
	h, m := t.Clock()
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location())
}

// Before сравнивает два времени суток
func (t TimeString) Before(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}
