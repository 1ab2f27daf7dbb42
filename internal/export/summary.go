package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olinlib/roomres/internal/reservation"
)

var weekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// PrintSummary writes a human-readable digest of the collected dataset.
func PrintSummary(w io.Writer, records []reservation.Record) {
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, "COLLECTION SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 60))

	if len(records) == 0 {
		fmt.Fprintln(w, "No reservation data collected.")
		fmt.Fprintln(w, strings.Repeat("=", 60))
		return
	}

	rooms := make(map[string]bool)
	byWeekday := make(map[string]int)
	byHour := make(map[int]int)
	for _, r := range records {
		rooms[r.RoomName] = true
		byWeekday[r.DayOfWeek]++
		byHour[r.HourOfDay]++
	}

	roomNames := make([]string, 0, len(rooms))
	for name := range rooms {
		roomNames = append(roomNames, name)
	}
	sort.Strings(roomNames)

	fmt.Fprintf(w, "Total reservation slots collected : %d\n", len(records))
	fmt.Fprintf(w, "Date range                        : %s to %s\n",
		records[0].Date.Format("2006-01-02"),
		records[len(records)-1].Date.Format("2006-01-02"))
	fmt.Fprintf(w, "Unique rooms found                : %d\n", len(rooms))
	fmt.Fprintf(w, "Rooms: %s\n", strings.Join(roomNames, ", "))

	fmt.Fprintln(w, "\nReservations by day of week:")
	for _, name := range weekdayOrder {
		if n := byWeekday[name]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", name, n)
		}
	}

	fmt.Fprintln(w, "\nReservations by hour of day:")
	for hour := 0; hour < 24; hour++ {
		if n := byHour[hour]; n > 0 {
			fmt.Fprintf(w, "  %02d:00  %d\n", hour, n)
		}
	}

	fmt.Fprintln(w, strings.Repeat("=", 60))
}
