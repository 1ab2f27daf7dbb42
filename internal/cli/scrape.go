package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/olinlib/roomres/internal/collector"
	"github.com/olinlib/roomres/internal/export"
	"github.com/olinlib/roomres/internal/extract"
	"github.com/olinlib/roomres/internal/fetch"
	"github.com/olinlib/roomres/internal/logger"
	"github.com/olinlib/roomres/internal/session"
)

const defaultBaseURL = "https://rollins.emscloudservice.com/web"

var (
	flagStart    string
	flagEnd      string
	flagDays     int
	flagOutput   string
	flagFormat   string
	flagUsername string
	flagPassword string
	flagDelay    float64
	flagBaseURL  string
	flagVerbose  bool
)

func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape reservation data from the EMS booking system",
		RunE:  runScrape,
	}

	cmd.Flags().StringVar(&flagStart, "start", "", "Start date (YYYY-MM-DD). Default: derived from --days")
	cmd.Flags().StringVar(&flagEnd, "end", "", "End date (YYYY-MM-DD). Default: today")
	cmd.Flags().IntVar(&flagDays, "days", 1, "Number of past days to collect (alternative to --start/--end)")
	cmd.Flags().StringVar(&flagOutput, "output", "reservations.csv", "Output file path")
	cmd.Flags().StringVar(&flagFormat, "format", "csv", "Output format: csv or ics")
	cmd.Flags().StringVar(&flagUsername, "username", "", "College NetID (for authenticated access)")
	cmd.Flags().StringVar(&flagPassword, "password", "", "College password (for authenticated access)")
	cmd.Flags().Float64Var(&flagDelay, "delay", 1.5, "Delay in seconds between requests")
	cmd.Flags().StringVar(&flagBaseURL, "base-url", defaultBaseURL, "EMS web root")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

func runScrape(cmd *cobra.Command, args []string) error {
	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, os.Stderr)
	logger.SetDefault(log)

	if flagFormat != "csv" && flagFormat != "ics" {
		return fmt.Errorf("invalid format: %s (must be 'csv' or 'ics')", flagFormat)
	}

	start, end, err := resolveRange(flagStart, flagEnd, flagDays, time.Now())
	if err != nil {
		return err
	}

	client := session.New()

	if flagUsername != "" && flagPassword != "" {
		ok, err := session.Login(cmd.Context(), client, flagBaseURL, flagUsername, flagPassword)
		if err != nil {
			log.Warn("login attempt failed", logger.Fields{"reason": err.Error()})
		} else if !ok {
			log.Warn("login may have failed, continuing with public access", nil)
		} else {
			log.Info("login successful", nil)
		}
	} else {
		log.Info("running without login (public data only)", nil)
	}

	c := collector.New(
		fetch.New(client, flagBaseURL, log),
		extract.New(extract.DefaultConfig()),
		time.Duration(flagDelay*float64(time.Second)),
		log,
	)

	records, stats, err := c.Collect(cmd.Context(), start, end)
	if err != nil {
		return fmt.Errorf("collecting reservations: %w", err)
	}

	out, err := os.Create(flagOutput)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	switch flagFormat {
	case "ics":
		err = export.WriteICS(out, records)
	default:
		err = export.WriteCSV(out, records)
	}
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	export.PrintSummary(os.Stdout, records)
	fmt.Printf("Data saved to: %s\n", flagOutput)

	log.Info("scrape finished", logger.Fields{
		"records":          len(records),
		"days_fetched":     stats.DaysFetched,
		"days_unretrieved": stats.DaysUnretrieved,
		"token_errors":     stats.Extraction.TokenErrors,
		"malformed_blocks": stats.Extraction.MalformedBlocks,
		"discarded":        stats.Extraction.Discarded,
	})

	if len(records) == 0 {
		fmt.Println("\nNo reservation data was collected. The EMS system may require login;")
		fmt.Println("re-run with --username and --password if you have college credentials.")
	}

	return nil
}
