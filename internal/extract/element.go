package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/olinlib/roomres/internal/reservation"
	"github.com/olinlib/roomres/internal/timeparse"
)

var (
	// eventClassPattern matches class attributes of elements that carry a
	// reservation in prose.
	eventClassPattern = regexp.MustCompile(`(?i)event|reservation|booking`)

	// eventTypePattern matches the data-type attribute variant of the same.
	eventTypePattern = regexp.MustCompile(`(?i)reservation|event`)

	// timeRangePattern matches "9:00 AM - 10:30 AM" style ranges. The
	// separator may be a hyphen, an en-dash, or the word "to"; each side is
	// parsed independently by timeparse.
	timeRangePattern = regexp.MustCompile(`(?i)(\d{1,2}:\d{2}\s*(?:AM|PM)?)\s*(?:-|–|to)\s*(\d{1,2}:\d{2}\s*(?:AM|PM)?)`)

	// roomTextPattern recovers a room identity from the element text: a
	// numbered room or one of the library's named rooms.
	roomTextPattern = regexp.MustCompile(`(?i)Room\s*\d{3}|\b(?:Grover|Lakeview|Van Houten|TWC)\b`)
)

// elementStrategy reads reservations out of free-text DOM elements whose
// class or data-type attribute marks them as event-like.
type elementStrategy struct{}

func (elementStrategy) extract(doc *goquery.Document, day time.Time) ([]reservation.Record, Stats) {
	records := make([]reservation.Record, 0)
	var stats Stats

	doc.Find("[class], [data-type]").Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		dataType, _ := sel.Attr("data-type")
		if !eventClassPattern.MatchString(class) && !eventTypePattern.MatchString(dataType) {
			return
		}

		text := flattenText(sel)

		m := timeRangePattern.FindStringSubmatch(text)
		if m == nil {
			stats.Abstained++
			return
		}

		start, err := timeparse.Normalize(m[1], day)
		if err != nil {
			stats.TokenErrors++
			return
		}
		end, err := timeparse.Normalize(m[2], day)
		if err != nil {
			stats.TokenErrors++
			return
		}

		rec, err := reservation.New(start, end, roomFromElement(sel, text), SourceElement)
		if err != nil {
			stats.Discarded++
			return
		}
		records = append(records, rec)
	})

	return records, stats
}

// roomFromElement recovers a room identity: text pattern first, then the
// element's data-room attribute, then the placeholder.
func roomFromElement(sel *goquery.Selection, text string) string {
	if m := roomTextPattern.FindString(text); m != "" {
		return m
	}
	if attr, ok := sel.Attr("data-room"); ok && attr != "" {
		return attr
	}
	return reservation.PlaceholderRoom
}

// flattenText joins an element's text content with normalized whitespace so
// the range pattern can span nested children.
func flattenText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
