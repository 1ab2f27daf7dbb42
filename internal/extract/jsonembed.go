package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/olinlib/roomres/internal/reservation"
	"github.com/olinlib/roomres/internal/timeparse"
)

// arrayPattern finds bracketed array-of-object literals inside script text.
// Non-greedy so back-to-back arrays in one script are matched separately.
var arrayPattern = regexp.MustCompile(`(?s)\[\{.*?\}\]`)

// Candidate key names per logical field, consulted in priority order. The
// EMS frontend has used several spellings over time; the first key present
// on an object wins.
var (
	startKeys    = []string{"startTime", "start_time", "StartTime", "start", "Begin", "beginTime"}
	endKeys      = []string{"endTime", "end_time", "EndTime", "end", "End"}
	roomNameKeys = []string{"roomName", "room_name", "RoomName", "room", "Room", "location"}
	roomIDKeys   = []string{"roomId", "room_id"}
)

// assumedDuration applies when an object carries a start but no end.
const assumedDuration = time.Hour

// jsonStrategy mines reservation arrays out of inline scripts.
type jsonStrategy struct{}

func (jsonStrategy) extract(doc *goquery.Document, day time.Time) ([]reservation.Record, Stats) {
	records := make([]reservation.Record, 0)
	var stats Stats

	doc.Find("script").Each(func(_ int, script *goquery.Selection) {
		for _, match := range arrayPattern.FindAllString(script.Text(), -1) {
			var items []map[string]interface{}
			if err := json.Unmarshal([]byte(match), &items); err != nil {
				stats.MalformedBlocks++
				continue
			}

			for _, item := range items {
				rec, err := recordFromObject(item, day)
				if err != nil {
					switch err.(type) {
					case *timeparse.ParseError:
						stats.TokenErrors++
					case *noStartError:
						stats.Abstained++
					default:
						stats.Discarded++
					}
					continue
				}
				records = append(records, rec)
			}
		}
	})

	return records, stats
}

// noStartError marks an object with no start-time-like field at all.
type noStartError struct{}

func (*noStartError) Error() string { return "object has no start-time field" }

func recordFromObject(item map[string]interface{}, day time.Time) (reservation.Record, error) {
	startVal, ok := lookup(item, startKeys)
	if !ok {
		return reservation.Record{}, &noStartError{}
	}

	start, err := timeparse.Normalize(startVal, day)
	if err != nil {
		return reservation.Record{}, err
	}

	roomName, _ := lookup(item, roomNameKeys)

	var rec reservation.Record
	if endVal, ok := lookup(item, endKeys); ok {
		end, err := timeparse.Normalize(endVal, day)
		if err != nil {
			return reservation.Record{}, err
		}
		rec, err = reservation.New(start, end, roomName, SourceJSON)
		if err != nil {
			return reservation.Record{}, err
		}
	} else {
		rec, err = reservation.NewWithDuration(start, assumedDuration, roomName, SourceJSON)
		if err != nil {
			return reservation.Record{}, err
		}
	}

	// An explicit room id on the object overrides the one derived from the name.
	if id, ok := lookup(item, roomIDKeys); ok && id != "" {
		rec.RoomID = id
	}

	return rec, nil
}

// lookup returns the first candidate key present on the object, stringified.
func lookup(item map[string]interface{}, keys []string) (string, bool) {
	for _, k := range keys {
		if v, ok := item[k]; ok && v != nil {
			return fmt.Sprint(v), true
		}
	}
	return "", false
}
