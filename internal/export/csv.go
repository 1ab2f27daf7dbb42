// Package export writes the collected dataset to its downstream consumers:
// the canonical CSV file read by the analysis tooling, an iCalendar
// rendering, and a terminal summary.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/olinlib/roomres/internal/reservation"
)

// csvHeader is the wire-level contract with the analysis tooling.
// Keep the column order EXACT.
var csvHeader = []string{
	"date",
	"day_of_week",
	"start_time",
	"end_time",
	"duration_hours",
	"room_name",
	"room_id",
	"hour_of_day",
	"month",
	"week_of_year",
	"is_weekend",
	"academic_semester",
	"source",
}

// WriteCSV writes records in the canonical tabular format. An empty dataset
// still gets the header row, so downstream tools see the schema.
func WriteCSV(w io.Writer, records []reservation.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(toRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func toRow(r reservation.Record) []string {
	return []string{
		r.Date.Format("2006-01-02"),
		r.DayOfWeek,
		r.Start.Format("15:04"),
		r.End.Format("15:04"),
		strconv.FormatFloat(r.DurationHours, 'f', -1, 64),
		r.RoomName,
		r.RoomID,
		strconv.Itoa(r.HourOfDay),
		strconv.Itoa(r.Month),
		strconv.Itoa(r.WeekOfYear),
		strconv.FormatBool(r.IsWeekend),
		r.AcademicSemester,
		r.Source,
	}
}
