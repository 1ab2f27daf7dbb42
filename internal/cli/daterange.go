package cli

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// resolveRange turns the flag combinations into a concrete [start, end]
// range. Explicit --start/--end win; --start alone runs to today; otherwise
// --days counts back from today (1 means just today).
func resolveRange(startFlag, endFlag string, days int, today time.Time) (time.Time, time.Time, error) {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	switch {
	case startFlag != "" && endFlag != "":
		start, err := time.Parse(dateLayout, startFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start date %q: %w", startFlag, err)
		}
		end, err := time.Parse(dateLayout, endFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end date %q: %w", endFlag, err)
		}
		return start, end, nil

	case startFlag != "":
		start, err := time.Parse(dateLayout, startFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start date %q: %w", startFlag, err)
		}
		return start, today, nil

	case endFlag != "":
		return time.Time{}, time.Time{}, fmt.Errorf("--end requires --start")

	default:
		if days < 1 {
			return time.Time{}, time.Time{}, fmt.Errorf("--days must be at least 1, got %d", days)
		}
		return today.AddDate(0, 0, -(days - 1)), today, nil
	}
}
