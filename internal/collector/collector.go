// Package collector drives extraction across a date range. The loop is
// sequential on purpose: requests go to a shared, credentialed session on
// someone else's booking system, and the inter-request delay is a politeness
// constraint, not an optimization.
package collector

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/olinlib/roomres/internal/extract"
	"github.com/olinlib/roomres/internal/logger"
	"github.com/olinlib/roomres/internal/reservation"
)

// Fetcher supplies raw page content for one calendar day, or reports that
// nothing could be retrieved. Transport, endpoint selection, and
// authentication are the fetcher's business; the collector only sees
// content-or-absent.
type Fetcher interface {
	Fetch(ctx context.Context, day time.Time) (string, bool)
}

// FetchFunc adapts a function to the Fetcher interface.
type FetchFunc func(ctx context.Context, day time.Time) (string, bool)

// Fetch calls f.
func (f FetchFunc) Fetch(ctx context.Context, day time.Time) (string, bool) {
	return f(ctx, day)
}

// Stats aggregates diagnostics across the whole range. None of these counts
// represent fatal conditions.
type Stats struct {
	DaysFetched     int
	DaysUnretrieved int
	RawRecords      int // before dedup
	Extraction      extract.Stats
}

// Collector iterates a date range, fetching and extracting one day at a time.
type Collector struct {
	fetcher Fetcher
	engine  *extract.Engine
	limiter *rate.Limiter
	log     *logger.Logger
}

// New creates a Collector. delay is the mandatory pause between successive
// days' requests; zero or negative disables the throttle (tests only).
func New(fetcher Fetcher, engine *extract.Engine, delay time.Duration, log *logger.Logger) *Collector {
	if log == nil {
		log = logger.Default()
	}

	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	limiter := rate.NewLimiter(limit, 1)
	// Spend the initial token so the first Wait enforces a full delay.
	limiter.Allow()

	return &Collector{
		fetcher: fetcher,
		engine:  engine,
		limiter: limiter,
		log:     log,
	}
}

// Collect gathers reservation records for every day from start to end
// inclusive, deduplicates them, and returns them sorted by
// (date, room name, start time).
//
// Days the fetcher cannot retrieve are logged and skipped; they never abort
// the range. A range that yields nothing returns an empty, non-nil slice.
// The only fatal precondition is start after end.
func (c *Collector) Collect(ctx context.Context, start, end time.Time) ([]reservation.Record, Stats, error) {
	start = midnight(start)
	end = midnight(end)
	if start.After(end) {
		return nil, Stats{}, fmt.Errorf("start date %s is after end date %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	c.log.Info("collecting date range", logger.Fields{
		"start": start.Format("2006-01-02"),
		"end":   end.Format("2006-01-02"),
		"days":  int(end.Sub(start).Hours()/24) + 1,
	})

	records := make([]reservation.Record, 0)
	var stats Stats

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		content, ok := c.fetcher.Fetch(ctx, day)
		if !ok {
			stats.DaysUnretrieved++
			c.log.Warn("no data retrieved", logger.Fields{"date": day.Format("2006-01-02")})
		} else {
			stats.DaysFetched++
			recs, st := c.engine.Extract(content, day)
			stats.Extraction.Merge(st)
			records = append(records, recs...)
			c.log.Info("scraped day", logger.Fields{
				"date":    day.Format("2006-01-02"),
				"records": len(recs),
			})
		}

		// The throttle applies after every attempt, retrieved or not.
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, stats, fmt.Errorf("waiting for request throttle: %w", err)
		}
	}

	stats.RawRecords = len(records)
	records = reservation.Dedup(records)
	reservation.Sort(records)

	c.log.Info("collection complete", logger.Fields{
		"records":     len(records),
		"duplicates":  stats.RawRecords - len(records),
		"days_missed": stats.DaysUnretrieved,
	})

	return records, stats, nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
