// Package timeparse normalizes the time tokens found on EMS availability
// pages. The booking site never settled on one format: grid rows use
// "9:00 AM", embedded data blocks use 24-hour "14:30" or full ISO
// datetimes, and free-text elements use whatever the page author typed.
package timeparse

import (
	"fmt"
	"strings"
	"time"
)

// Layouts are tried in order; the first successful parse wins.
// ISO layouts carry a date portion, but only the time-of-day is kept —
// the record is always anchored to the day being scraped.
var layouts = []string{
	"3:04 PM",
	"3:04PM",
	"15:04",
	"3 PM",
	"3PM",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseError reports a token that matched none of the supported layouts.
// Callers treat it as "no usable time here", not a fatal condition.
type ParseError struct {
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse time token %q", e.Token)
}

// Normalize parses a time token and anchors it to the given calendar day.
// Meridiems are matched case-insensitively ("9:00am" and "9:00 AM" are
// equivalent).
func Normalize(token string, day time.Time) (time.Time, error) {
	cleaned := strings.ToUpper(strings.TrimSpace(token))

	for _, layout := range layouts {
		t, err := time.Parse(layout, cleaned)
		if err != nil {
			continue
		}
		return time.Date(day.Year(), day.Month(), day.Day(),
			t.Hour(), t.Minute(), 0, 0, day.Location()), nil
	}

	return time.Time{}, &ParseError{Token: token}
}
