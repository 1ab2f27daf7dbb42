// Package simulate generates a synthetic reservation dataset from a
// configured calendar model: library hours, academic-calendar busyness, and
// an hour-of-day demand curve. It shares the canonical record schema with
// the scraper but none of the extraction logic, and exists so the analysis
// pipeline can be exercised before (or instead of) collecting real data.
package simulate

import (
	"math"
	"math/rand"
	"time"

	"github.com/olinlib/roomres/internal/reservation"
)

// Source tags synthetic records in the shared schema.
const Source = "synthetic"

// OpenHours is a [open, close) range of hours for one weekday.
type OpenHours struct {
	Open  int
	Close int
}

// Holiday is a recurring month/day the library is closed.
type Holiday struct {
	Month time.Month
	Day   int
}

// CalendarModel describes the library calendar the generator draws from.
// All knobs are explicit; the generator reads no ambient state.
type CalendarModel struct {
	Rooms           []string
	Hours           map[time.Weekday]OpenHours
	MonthlyBusyness map[time.Month]float64
	HourDemand      map[int]float64
	DurationOptions []float64 // hours, sampled uniformly (repeats weight)
	Holidays        []Holiday

	// Mean bookings per room per day before the monthly multiplier.
	WeekdayBookings float64
	WeekendBookings float64
}

// DefaultModel returns the Olin Library calendar.
func DefaultModel() CalendarModel {
	return CalendarModel{
		Rooms: []string{
			"Room 104 - Edwin O. Grover Classroom",
			"Room 211 - Lakeview/TWC Classroom",
			"Room 230 - Library Meeting Room",
			"Room 311 - Van Houten Conference Room",
			"Room 319 - General Classroom",
		},
		Hours: map[time.Weekday]OpenHours{
			time.Monday:    {8, 22},
			time.Tuesday:   {8, 22},
			time.Wednesday: {8, 22},
			time.Thursday:  {8, 22},
			time.Friday:    {8, 20},
			time.Saturday:  {10, 18},
			time.Sunday:    {12, 20},
		},
		MonthlyBusyness: map[time.Month]float64{
			time.January: 0.6, time.February: 0.85, time.March: 0.90,
			time.April: 0.95, time.May: 0.75, time.June: 0.30,
			time.July: 0.30, time.August: 0.55, time.September: 0.80,
			time.October: 0.90, time.November: 0.95, time.December: 0.50,
		},
		HourDemand: map[int]float64{
			8: 0.10, 9: 0.30, 10: 0.55, 11: 0.70, 12: 0.80, 13: 0.85,
			14: 0.90, 15: 0.95, 16: 0.90, 17: 0.80, 18: 0.65, 19: 0.50,
			20: 0.30, 21: 0.15,
		},
		DurationOptions: []float64{0.5, 1.0, 1.0, 1.5, 1.5, 2.0, 2.0, 2.5, 3.0},
		Holidays: []Holiday{
			{time.January, 1}, {time.July, 4}, {time.November, 25},
			{time.December, 25}, {time.December, 26}, {time.December, 27},
			{time.December, 28}, {time.December, 29}, {time.December, 30},
			{time.December, 31},
		},
		WeekdayBookings: 6,
		WeekendBookings: 3,
	}
}

// Generator produces synthetic reservations. The random source is injected
// so runs are reproducible from a seed.
type Generator struct {
	model CalendarModel
	rng   *rand.Rand
}

// NewGenerator creates a Generator over the given model and random source.
func NewGenerator(model CalendarModel, rng *rand.Rand) *Generator {
	return &Generator{model: model, rng: rng}
}

// Year generates a full calendar year of reservations, sorted canonically.
func (g *Generator) Year(year int) []reservation.Record {
	records := make([]reservation.Record, 0)

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		records = append(records, g.Day(day)...)
	}

	reservation.Sort(records)
	return records
}

// Day generates the reservations for one calendar day. Holidays yield none.
func (g *Generator) Day(date time.Time) []reservation.Record {
	records := make([]reservation.Record, 0)

	if g.isHoliday(date) {
		return records
	}
	hours, ok := g.model.Hours[date.Weekday()]
	if !ok || hours.Close <= hours.Open {
		return records
	}

	monthFactor, ok := g.model.MonthlyBusyness[date.Month()]
	if !ok {
		monthFactor = 0.5
	}

	base := g.model.WeekdayBookings
	if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
		base = g.model.WeekendBookings
	}

	totalSlots := (hours.Close - hours.Open) * 2

	for _, room := range g.model.Rooms {
		booked := make(map[int]bool)

		for i := g.poisson(base * monthFactor); i > 0; i-- {
			startHour, ok := g.pickStartHour(hours)
			if !ok {
				break
			}
			startMinute := g.rng.Intn(2) * 30
			duration := g.model.DurationOptions[g.rng.Intn(len(g.model.DurationOptions))]

			startSlot := (startHour-hours.Open)*2 + startMinute/30
			needed := int(duration * 2)

			if startSlot+needed > totalSlots {
				continue // runs past closing
			}
			if conflicts(booked, startSlot, needed) {
				continue
			}
			for s := startSlot; s < startSlot+needed; s++ {
				booked[s] = true
			}

			start := time.Date(date.Year(), date.Month(), date.Day(),
				startHour, startMinute, 0, 0, date.Location())
			rec, err := reservation.NewWithDuration(start,
				time.Duration(duration*float64(time.Hour)), room, Source)
			if err != nil {
				continue
			}
			records = append(records, rec)
		}
	}

	return records
}

func (g *Generator) isHoliday(date time.Time) bool {
	for _, h := range g.model.Holidays {
		if date.Month() == h.Month && date.Day() == h.Day {
			return true
		}
	}
	return false
}

// pickStartHour samples a start hour weighted by the demand curve. The last
// open hour is excluded so even the shortest booking can fit.
func (g *Generator) pickStartHour(hours OpenHours) (int, bool) {
	var total float64
	weights := make([]float64, 0, hours.Close-hours.Open)
	for h := hours.Open; h < hours.Close-1; h++ {
		w, ok := g.model.HourDemand[h]
		if !ok {
			w = 0.1
		}
		weights = append(weights, w)
		total += w
	}
	if len(weights) == 0 || total <= 0 {
		return 0, false
	}

	target := g.rng.Float64() * total
	for i, w := range weights {
		target -= w
		if target <= 0 {
			return hours.Open + i, true
		}
	}
	return hours.Close - 2, true
}

// poisson samples a Poisson-distributed count (Knuth's method; lambda here
// is small enough that the multiplication chain stays stable).
func (g *Generator) poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	limit := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= g.rng.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}

func conflicts(booked map[int]bool, start, n int) bool {
	for s := start; s < start+n; s++ {
		if booked[s] {
			return true
		}
	}
	return false
}
