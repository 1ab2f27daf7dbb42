// Package reservation defines the canonical room-reservation record and the
// derivations shared by every data source (scraped pages and the synthetic
// generator alike). The field set is the stable contract consumed by the
// downstream analysis tooling; renaming or retyping a field breaks it.
package reservation

import (
	"fmt"
	"regexp"
	"time"
)

// PlaceholderRoom is used when no room identity can be recovered.
const PlaceholderRoom = "Unknown"

// Record is one reservation event, normalized to the canonical schema.
type Record struct {
	Date             time.Time `json:"date"`
	DayOfWeek        string    `json:"day_of_week"`
	Start            time.Time `json:"start_time"`
	End              time.Time `json:"end_time"`
	DurationHours    float64   `json:"duration_hours"`
	RoomName         string    `json:"room_name"`
	RoomID           string    `json:"room_id"`
	HourOfDay        int       `json:"hour_of_day"`
	Month            int       `json:"month"`
	WeekOfYear       int       `json:"week_of_year"`
	IsWeekend        bool      `json:"is_weekend"`
	AcademicSemester string    `json:"academic_semester"`
	Source           string    `json:"source"`
}

// New builds a record from explicit start and end points. A reservation that
// ends at or before it starts is noise (no midnight rollover is modeled) and
// is rejected.
func New(start, end time.Time, roomName, source string) (Record, error) {
	if !end.After(start) {
		return Record{}, fmt.Errorf("reservation ends at or before it starts (%s .. %s)",
			start.Format("15:04"), end.Format("15:04"))
	}
	return build(start, end, end.Sub(start).Hours(), roomName, source), nil
}

// NewWithDuration builds a record from a start point and a known duration.
func NewWithDuration(start time.Time, duration time.Duration, roomName, source string) (Record, error) {
	if duration <= 0 {
		return Record{}, fmt.Errorf("non-positive reservation duration %s", duration)
	}
	return build(start, start.Add(duration), duration.Hours(), roomName, source), nil
}

func build(start, end time.Time, durationHours float64, roomName, source string) Record {
	if roomName == "" {
		roomName = PlaceholderRoom
	}

	date := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	_, week := date.ISOWeek()
	weekday := date.Weekday()

	return Record{
		Date:             date,
		DayOfWeek:        weekday.String(),
		Start:            start,
		End:              end,
		DurationHours:    durationHours,
		RoomName:         roomName,
		RoomID:           ExtractRoomID(roomName),
		HourOfDay:        start.Hour(),
		Month:            int(date.Month()),
		WeekOfYear:       week,
		IsWeekend:        weekday == time.Saturday || weekday == time.Sunday,
		AcademicSemester: Semester(date.Month()),
		Source:           source,
	}
}

// roomNumberPattern matches a standalone 3-digit token, the library's room
// numbering convention ("Room 104", "104 - Grover Classroom").
var roomNumberPattern = regexp.MustCompile(`\b(\d{3})\b`)

// ExtractRoomID pulls a short room identifier out of a free-text room name.
// Falls back to the full name when no 3-digit room number is present.
func ExtractRoomID(roomName string) string {
	if m := roomNumberPattern.FindString(roomName); m != "" {
		return m
	}
	return roomName
}

// Semester classifies a month into the academic calendar:
// Fall = Aug-Dec, Spring = Jan-May, Summer = Jun-Jul.
func Semester(month time.Month) string {
	switch {
	case month >= time.August:
		return "Fall"
	case month <= time.May:
		return "Spring"
	default:
		return "Summer"
	}
}
