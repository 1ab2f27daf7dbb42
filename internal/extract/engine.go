package extract

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/olinlib/roomres/internal/reservation"
)

// Provenance tags recorded in each record's Source field.
const (
	SourceGrid    = "grid_table"
	SourceJSON    = "json_embed"
	SourceElement = "html_element"
)

// Config carries the page-recognition vocabulary. It is passed in explicitly
// so the engine reads no ambient state and tests can narrow it.
type Config struct {
	// RoomKeywords qualify a table as a reservation grid when any of them
	// appears in the header row text (case-insensitive).
	RoomKeywords []string

	// ReservedMarkers mark a grid cell as booked when any of them appears
	// in the cell's class attribute or text (case-insensitive substring).
	ReservedMarkers []string
}

// DefaultConfig returns the vocabulary for the Olin Library EMS instance.
func DefaultConfig() Config {
	return Config{
		RoomKeywords: []string{
			"room", "104", "211", "230", "311", "319",
			"grover", "lakeview", "van houten", "twc",
		},
		ReservedMarkers: []string{
			"reserved", "booked", "unavailable", "occupied", "event",
		},
	}
}

// Stats counts items each strategy skipped. Skips never abort extraction;
// the counts exist so callers can see how noisy a page was.
type Stats struct {
	TokenErrors     int // time tokens that parsed as nothing
	MalformedBlocks int // script blocks that looked like JSON but were not
	Discarded       int // built records violating end > start
	Abstained       int // tables/objects/elements a strategy passed over
}

// Merge adds another Stats into s.
func (s *Stats) Merge(o Stats) {
	s.TokenErrors += o.TokenErrors
	s.MalformedBlocks += o.MalformedBlocks
	s.Discarded += o.Discarded
	s.Abstained += o.Abstained
}

// strategy is one independent heuristic over a parsed page. The fixed set of
// implementations lives in this package; nothing is discovered at runtime.
type strategy interface {
	extract(doc *goquery.Document, day time.Time) ([]reservation.Record, Stats)
}

// Engine applies every strategy to a page and concatenates their finds.
type Engine struct {
	strategies []strategy
}

// New creates an Engine with the three fixed strategies.
func New(cfg Config) *Engine {
	return &Engine{
		strategies: []strategy{
			gridStrategy{cfg: cfg},
			jsonStrategy{},
			elementStrategy{},
		},
	}
}

// Extract runs all strategies against one page. It never fails: an
// unparseable page or a page matching no strategy yields zero records.
// The union is additive, not first-match-wins — a single page can
// legitimately satisfy more than one strategy, and downstream dedup
// collapses the overlap.
func (e *Engine) Extract(pageContent string, day time.Time) ([]reservation.Record, Stats) {
	records := make([]reservation.Record, 0)
	var stats Stats

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageContent))
	if err != nil {
		return records, stats
	}

	for _, s := range e.strategies {
		recs, st := s.extract(doc, day)
		records = append(records, recs...)
		stats.Merge(st)
	}

	return records, stats
}
