package reservation

import (
	"testing"
	"time"
)

func mustNew(t *testing.T, start, end time.Time, room, source string) Record {
	t.Helper()
	r, err := New(start, end, room, source)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return r
}

func TestNewDerivations(t *testing.T) {
	// Friday 2024-03-01, 10:00-11:30
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 11, 30, 0, 0, time.UTC)

	r := mustNew(t, start, end, "Room 230 - Library Meeting Room", "json_embed")

	if r.Date != time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("Date = %s, expected midnight 2024-03-01", r.Date)
	}
	if r.DayOfWeek != "Friday" {
		t.Errorf("DayOfWeek = %q, expected Friday", r.DayOfWeek)
	}
	if r.DurationHours != 1.5 {
		t.Errorf("DurationHours = %v, expected 1.5", r.DurationHours)
	}
	if r.RoomID != "230" {
		t.Errorf("RoomID = %q, expected 230", r.RoomID)
	}
	if r.HourOfDay != 10 {
		t.Errorf("HourOfDay = %d, expected 10", r.HourOfDay)
	}
	if r.Month != 3 {
		t.Errorf("Month = %d, expected 3", r.Month)
	}
	if r.WeekOfYear != 9 {
		t.Errorf("WeekOfYear = %d, expected 9", r.WeekOfYear)
	}
	if r.IsWeekend {
		t.Error("IsWeekend = true for a Friday")
	}
	if r.AcademicSemester != "Spring" {
		t.Errorf("AcademicSemester = %q, expected Spring", r.AcademicSemester)
	}
	if r.Source != "json_embed" {
		t.Errorf("Source = %q, expected json_embed", r.Source)
	}
}

func TestNewRejectsNonPositiveSpan(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	if _, err := New(at, at, "Room 104", "grid_table"); err == nil {
		t.Error("expected error for zero-length reservation")
	}
	if _, err := New(at, at.Add(-time.Hour), "Room 104", "grid_table"); err == nil {
		t.Error("expected error for end before start")
	}
	if _, err := NewWithDuration(at, 0, "Room 104", "grid_table"); err == nil {
		t.Error("expected error for zero duration")
	}
}

func TestNewEmptyRoomFallsBack(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	r := mustNew(t, start, start.Add(time.Hour), "", "html_element")

	if r.RoomName != PlaceholderRoom {
		t.Errorf("RoomName = %q, expected %q", r.RoomName, PlaceholderRoom)
	}
}

func TestWeekendFlag(t *testing.T) {
	saturday := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	r := mustNew(t, saturday, saturday.Add(time.Hour), "Room 104", "grid_table")
	if !r.IsWeekend {
		t.Error("expected IsWeekend for Saturday")
	}
}

func TestSemester(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "Spring"},
		{time.May, "Spring"},
		{time.June, "Summer"},
		{time.July, "Summer"},
		{time.August, "Fall"},
		{time.December, "Fall"},
	}
	for _, tt := range tests {
		if got := Semester(tt.month); got != tt.want {
			t.Errorf("Semester(%s) = %q, expected %q", tt.month, got, tt.want)
		}
	}
}

func TestExtractRoomID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Room 104", "104"},
		{"Room 104 - Edwin O. Grover Classroom", "104"},
		{"319", "319"},
		{"Van Houten Conference Room", "Van Houten Conference Room"},
		{"Room 12", "Room 12"},     // two digits, not a room number
		{"Suite 1040", "Suite 1040"}, // four digits, not a room number
	}
	for _, tt := range tests {
		if got := ExtractRoomID(tt.name); got != tt.want {
			t.Errorf("ExtractRoomID(%q) = %q, expected %q", tt.name, got, tt.want)
		}
	}
}
