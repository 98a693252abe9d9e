// Command schedule prints today's Sochi station board once.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"sochi-schedule/config"
	"sochi-schedule/models"
	"sochi-schedule/schedule"
	"sochi-schedule/services"
)

var (
	flagLimit   = flag.Int("limit", 4, "show only the last N trains of each direction (0 shows all)")
	flagVerbose = flag.Bool("verbose", false, "show DEBUG logging")
)

func main() {
	flag.Parse()
	cfg := config.Load()

	level := cfg.LogLevel
	if *flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	fetcher := schedule.NewFetcher(logger)
	fetcher.Client = schedule.NewHTTPClient(cfg.ScheduleTimeout, cfg.ScheduleUserAgent, cfg.ScheduleAcceptLanguage)
	fetcher.BaseURL = cfg.ScheduleBaseURL
	fetcher.StationCode = cfg.StationCode

	result := fetcher.GetStationSchedule(context.Background())
	printSchedule(os.Stdout, fetcher.Station(), fetcher.Today(), result, *flagLimit)
	if result.Error != "" && len(result.Arrivals) == 0 && len(result.Departures) == 0 {
		os.Exit(1)
	}
}

func printSchedule(out io.Writer, station, date string, result models.ScheduleResult, limit int) {
	fmt.Fprintf(out, "Station %s, %s\n", station, date)
	if result.Error != "" {
		fmt.Fprintf(out, "\nERROR: %s\n", result.Error)
	}

	printDirection(out, "Arrivals", result.Arrivals, limit)
	printDirection(out, "Departures", result.Departures, limit)
}

func printDirection(out io.Writer, title string, entries []models.ScheduleEntry, limit int) {
	fmt.Fprintf(out, "\n--- %s: %d ---\n", title, len(entries))
	if len(entries) == 0 {
		fmt.Fprintln(out, "  (no data)")
		return
	}

	w := tabwriter.NewWriter(out, 5, 3, 3, ' ', 0)
	for _, e := range services.LastEntries(entries, limit) {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", e.Time, e.Train, e.Route)
	}
	w.Flush()

	if limit > 0 && len(entries) > limit {
		fmt.Fprintln(out, "  ...")
	}
}
