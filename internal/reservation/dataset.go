package reservation

import (
	"fmt"
	"sort"
)

// Key returns the identity used for duplicate detection. Two records for the
// same room and time span are the same reservation no matter which extraction
// strategy saw it, so Source is deliberately excluded.
func (r Record) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s",
		r.Date.Format("2006-01-02"), r.RoomName,
		r.Start.Format("15:04"), r.End.Format("15:04"))
}

// Dedup collapses duplicate records, keeping the first occurrence of each
// key. It is idempotent and preserves the relative order of survivors.
func Dedup(records []Record) []Record {
	seen := make(map[string]bool, len(records))
	unique := make([]Record, 0, len(records))
	for _, r := range records {
		if seen[r.Key()] {
			continue
		}
		seen[r.Key()] = true
		unique = append(unique, r)
	}
	return unique
}

// Sort orders records ascending by (date, room name, start time), the
// canonical ordering of the output dataset.
func Sort(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		if records[i].RoomName != records[j].RoomName {
			return records[i].RoomName < records[j].RoomName
		}
		return records[i].Start.Before(records[j].Start)
	})
}
