package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDay = errors.New("invalid day")

// Weekdays lists the day keys in display order, Monday first.
var Weekdays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// NormalizeDay maps user input such as "monday", "MON" or " Friday " to the
// canonical day key.
func NormalizeDay(day string) (string, error) {
	d := strings.ToLower(strings.TrimSpace(day))
	if len(d) < 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}
	for _, weekday := range Weekdays {
		lw := strings.ToLower(weekday)
		if d == lw || (len(d) <= len(lw) && strings.HasPrefix(lw, d)) {
			return weekday, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDay, day)
}

// IsWeekday reports whether day is already a canonical day key.
func IsWeekday(day string) bool {
	for _, weekday := range Weekdays {
		if weekday == day {
			return true
		}
	}
	return false
}

// DayOf returns the day key for t in t's location.
func DayOf(t time.Time) string {
	// time.Weekday starts on Sunday
	return Weekdays[(int(t.Weekday())+6)%7]
}
