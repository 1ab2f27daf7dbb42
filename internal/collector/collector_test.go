package collector

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/olinlib/roomres/internal/extract"
	"github.com/olinlib/roomres/internal/logger"
)

func quietLogger() *logger.Logger {
	return logger.New(logger.LevelError, &bytes.Buffer{})
}

func gridPage(room string) string {
	return fmt.Sprintf(`
	<table>
		<tr><th>Time</th><th>%s</th></tr>
		<tr><td>9:00 AM</td><td class="reserved"></td></tr>
		<tr><td>9:30 AM</td><td></td></tr>
	</table>`, room)
}

// recordingFetcher serves canned pages and records when each day was asked for.
type recordingFetcher struct {
	pages   map[string]string
	fetched []time.Time
	at      []time.Time
}

func (f *recordingFetcher) Fetch(_ context.Context, day time.Time) (string, bool) {
	f.fetched = append(f.fetched, day)
	f.at = append(f.at, time.Now())
	page, ok := f.pages[day.Format("2006-01-02")]
	return page, ok
}

func TestCollectRangeWithMissingDay(t *testing.T) {
	day1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	day3 := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)

	fetcher := &recordingFetcher{pages: map[string]string{
		"2024-03-01": gridPage("Room 104"),
		// day 2 missing: fetch yields nothing
		"2024-03-03": gridPage("Room 211"),
	}}

	c := New(fetcher, extract.New(extract.DefaultConfig()), 0, quietLogger())
	records, stats, err := c.Collect(context.Background(), day1, day3)
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}

	if len(fetcher.fetched) != 3 {
		t.Fatalf("fetch called %d times, expected 3 (every day attempted)", len(fetcher.fetched))
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, expected 2", len(records))
	}
	if !records[0].Date.Equal(day1) || !records[1].Date.Equal(day3) {
		t.Errorf("record dates = %s, %s; expected day 1 and day 3",
			records[0].Date.Format("2006-01-02"), records[1].Date.Format("2006-01-02"))
	}
	if stats.DaysFetched != 2 || stats.DaysUnretrieved != 1 {
		t.Errorf("stats = %+v, expected 2 fetched / 1 unretrieved", stats)
	}
}

func TestCollectThrottleObservedAroundMissingDay(t *testing.T) {
	day1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	day3 := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)

	// Only day 2 is absent; the delay must still separate every attempt.
	fetcher := &recordingFetcher{pages: map[string]string{
		"2024-03-01": gridPage("Room 104"),
		"2024-03-03": gridPage("Room 104"),
	}}

	delay := 30 * time.Millisecond
	c := New(fetcher, extract.New(extract.DefaultConfig()), delay, quietLogger())

	started := time.Now()
	if _, _, err := c.Collect(context.Background(), day1, day3); err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	elapsed := time.Since(started)

	// Three attempts, each followed by the throttle.
	if min := 3*delay - 5*time.Millisecond; elapsed < min {
		t.Errorf("range completed in %s, expected at least %s", elapsed, min)
	}
	for i := 1; i < len(fetcher.at); i++ {
		gap := fetcher.at[i].Sub(fetcher.at[i-1])
		if gap < delay-5*time.Millisecond {
			t.Errorf("gap between attempt %d and %d was %s, expected about %s", i-1, i, gap, delay)
		}
	}
}

func TestCollectEmptyRangeIsNotAnError(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	fetcher := FetchFunc(func(context.Context, time.Time) (string, bool) {
		return "<html><body><p>nothing bookable</p></body></html>", true
	})

	c := New(fetcher, extract.New(extract.DefaultConfig()), 0, quietLogger())
	records, _, err := c.Collect(context.Background(), day, day)
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if records == nil {
		t.Fatal("expected empty non-nil slice for a range that found nothing")
	}
	if len(records) != 0 {
		t.Fatalf("got %d records, expected 0", len(records))
	}
}

func TestCollectRejectsInvertedRange(t *testing.T) {
	fetcher := &recordingFetcher{}
	c := New(fetcher, extract.New(extract.DefaultConfig()), 0, quietLogger())

	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	if _, _, err := c.Collect(context.Background(), start, end); err == nil {
		t.Fatal("expected error for start after end")
	}
	if len(fetcher.fetched) != 0 {
		t.Errorf("fetch was called %d times on an invalid range, expected 0", len(fetcher.fetched))
	}
}

func TestCollectDeduplicatesAcrossStrategies(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	// Grid and embedded data both expose the same 9:00-9:30 slot.
	page := gridPage("Room 104") +
		`<script>var d = [{"startTime":"9:00","endTime":"9:30","roomName":"Room 104"}];</script>`

	fetcher := &recordingFetcher{pages: map[string]string{"2024-03-01": page}}

	c := New(fetcher, extract.New(extract.DefaultConfig()), 0, quietLogger())
	records, stats, err := c.Collect(context.Background(), day, day)
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}

	if stats.RawRecords != 2 {
		t.Errorf("RawRecords = %d, expected 2 before dedup", stats.RawRecords)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records after dedup, expected 1", len(records))
	}
}

func TestCollectOutputSorted(t *testing.T) {
	day1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	multiRoom := `
	<table>
		<tr><th>Time</th><th>Room 211</th><th>Room 104</th></tr>
		<tr><td>9:30 AM</td><td class="reserved"></td><td class="reserved"></td></tr>
		<tr><td>9:00 AM</td><td class="reserved"></td><td></td></tr>
	</table>`

	fetcher := &recordingFetcher{pages: map[string]string{
		"2024-03-01": multiRoom,
		"2024-03-02": gridPage("Room 104"),
	}}

	c := New(fetcher, extract.New(extract.DefaultConfig()), 0, quietLogger())
	records, _, err := c.Collect(context.Background(), day1, day2)
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}

	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1], records[i]
		switch {
		case cur.Date.Before(prev.Date):
			t.Fatalf("records out of date order at index %d", i)
		case cur.Date.Equal(prev.Date) && cur.RoomName < prev.RoomName:
			t.Fatalf("records out of room order at index %d", i)
		case cur.Date.Equal(prev.Date) && cur.RoomName == prev.RoomName && cur.Start.Before(prev.Start):
			t.Fatalf("records out of start order at index %d", i)
		}
	}
}
