package export

import (
	"crypto/sha1"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olinlib/roomres/internal/reservation"
)

// WriteICS renders the dataset as a single iCalendar file, one VEVENT per
// reservation, so collected bookings can be inspected in a calendar client.
func WriteICS(w io.Writer, records []reservation.Record) error {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//Olin Library//roomres//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	stamp := formatICSTime(time.Now().UTC())
	for _, r := range records {
		ics.WriteString("BEGIN:VEVENT\r\n")
		ics.WriteString(fmt.Sprintf("UID:%s@roomres\r\n", eventUID(r)))
		ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", stamp))
		ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(r.Start)))
		ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(r.End)))
		ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS("Reserved - "+r.RoomName)))
		ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(r.RoomName)))
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n",
			escapeICS(fmt.Sprintf("Source: %s, duration %.2fh", r.Source, r.DurationHours))))
		ics.WriteString("STATUS:CONFIRMED\r\n")
		ics.WriteString("TRANSP:OPAQUE\r\n")
		ics.WriteString("END:VEVENT\r\n")
	}

	ics.WriteString("END:VCALENDAR\r\n")

	_, err := io.WriteString(w, ics.String())
	return err
}

// eventUID derives a deterministic identifier from the record's dedup key.
func eventUID(r reservation.Record) string {
	h := sha1.New()
	h.Write([]byte(r.Key()))
	return fmt.Sprintf("%x", h.Sum(nil))
}

func formatICSTime(t time.Time) string {
	return t.Format("20060102T150405")
}

// escapeICS escapes special characters per RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
