package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/olinlib/roomres/internal/reservation"
	"github.com/olinlib/roomres/internal/timeparse"
)

// slotLength is the grid's column granularity. A reserved cell says "this
// half hour is taken", not how long the underlying booking runs.
const slotLength = 30 * time.Minute

// gridStrategy reads the EMS availability grid: a table with time labels in
// the first column and one column per room.
type gridStrategy struct {
	cfg Config
}

func (g gridStrategy) extract(doc *goquery.Document, day time.Time) ([]reservation.Record, Stats) {
	records := make([]reservation.Record, 0)
	var stats Stats

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		// A grid needs a header row and at least one data row; qualification
		// beyond that is by header keyword only.
		rows := table.Find("tr")
		if rows.Length() < 2 {
			stats.Abstained++
			return
		}

		headers := cellTexts(rows.First())
		if !g.qualifies(headers) {
			stats.Abstained++
			return
		}

		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td, th")
			if cells.Length() < 2 {
				return
			}

			slotStart, err := timeparse.Normalize(cells.First().Text(), day)
			if err != nil {
				stats.TokenErrors++
				return
			}

			cells.Slice(1, cells.Length()).Each(func(i int, cell *goquery.Selection) {
				if !g.reserved(cell) {
					return
				}

				col := i + 1
				roomName := fmt.Sprintf("Room_%d", col)
				if col < len(headers) && headers[col] != "" {
					roomName = headers[col]
				}

				rec, err := reservation.NewWithDuration(slotStart, slotLength, roomName, SourceGrid)
				if err != nil {
					stats.Discarded++
					return
				}
				records = append(records, rec)
			})
		})
	})

	return records, stats
}

// qualifies reports whether a header row identifies a reservation grid.
// Tables without a room keyword in their header (navigation, layout tables)
// are passed over so their cells are never misread as bookings.
func (g gridStrategy) qualifies(headers []string) bool {
	joined := strings.ToLower(strings.Join(headers, " "))
	for _, kw := range g.cfg.RoomKeywords {
		if strings.Contains(joined, kw) {
			return true
		}
	}
	return false
}

// reserved reports whether a grid cell is marked as booked, by CSS class or
// by literal cell text.
func (g gridStrategy) reserved(cell *goquery.Selection) bool {
	class, _ := cell.Attr("class")
	class = strings.ToLower(class)
	text := strings.ToLower(strings.TrimSpace(cell.Text()))

	for _, marker := range g.cfg.ReservedMarkers {
		if strings.Contains(class, marker) || (text != "" && strings.Contains(text, marker)) {
			return true
		}
	}
	return false
}

// cellTexts returns the trimmed text of each th/td in a row.
func cellTexts(row *goquery.Selection) []string {
	texts := make([]string, 0)
	row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(cell.Text()))
	})
	return texts
}
