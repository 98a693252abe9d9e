// Package schedule scrapes the arrivals and departures board of a railway
// station from rasp.yandex.ru.
package schedule

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sochi-schedule/models"
)

const (
	DefaultBaseURL = "https://rasp.yandex.ru"

	// SochiStationCode is the upstream code of Sochi railway station
	SochiStationCode = "9623103"

	DateFormat = "2006-01-02"
)

// ErrEmptyPage is returned when the site answers with an empty body
var ErrEmptyPage = errors.New("schedule page is empty")

const (
	MsgArrivalsUnavailable   = "failed to load arrival data."
	MsgDeparturesUnavailable = "failed to load departure data."
	MsgNoTrainsToday         = "no arrival or departure trains found for today."
)

// Direction selects which half of the board is fetched
type Direction string

const (
	Arrival   Direction = "arrival"
	Departure Direction = "departure"
)

// Fetcher downloads and parses the station board. It holds no mutable state,
// so one Fetcher may serve concurrent callers.
type Fetcher struct {
	Client      *http.Client
	BaseURL     string
	StationCode string
	Extractor   SegmentExtractor
	Logger      Logger

	// Now returns the current local time; "today" is derived from it
	Now func() time.Time
}

// NewFetcher returns a Fetcher for Sochi station with the default client,
// extractor and clock.
func NewFetcher(logger Logger) *Fetcher {
	return &Fetcher{
		Client:      NewHTTPClient(DefaultTimeout, "", ""),
		BaseURL:     DefaultBaseURL,
		StationCode: SochiStationCode,
		Extractor:   NewYandexExtractor(),
		Logger:      logger,
		Now:         time.Now,
	}
}

// GetStationSchedule fetches today's arrivals, then today's departures.
// Network and markup problems never escape: they end up in the Error field,
// which is cleared as soon as either direction produced entries.
func (f *Fetcher) GetStationSchedule(ctx context.Context) models.ScheduleResult {
	log := f.logger()
	log.Info("Fetching station schedule", "station", f.stationCode())

	var failures []string
	result := models.ScheduleResult{
		Arrivals:   []models.ScheduleEntry{},
		Departures: []models.ScheduleEntry{},
	}

	if html, err := f.FetchHTML(ctx, Arrival); err != nil {
		log.Error(MsgArrivalsUnavailable, "error", err)
		failures = append(failures, MsgArrivalsUnavailable)
	} else {
		result.Arrivals = f.Parse(html, Arrival)
	}

	if html, err := f.FetchHTML(ctx, Departure); err != nil {
		log.Error(MsgDeparturesUnavailable, "error", err)
		failures = append(failures, MsgDeparturesUnavailable)
	} else {
		result.Departures = f.Parse(html, Departure)
	}

	switch {
	case len(result.Arrivals) > 0 || len(result.Departures) > 0:
		result.Error = ""
	case len(failures) > 0:
		result.Error = strings.Join(failures, " ")
	default:
		result.Error = MsgNoTrainsToday
		log.Warn(MsgNoTrainsToday)
	}

	log.Info("Fetched station schedule", "arrivals", len(result.Arrivals), "departures", len(result.Departures))
	return result
}

// URL returns the board address for the given direction and YYYY-MM-DD date
func (f *Fetcher) URL(dir Direction, date string) string {
	base := f.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	u := strings.TrimRight(base, "/") + "/station/" + url.PathEscape(f.stationCode()) + "/"
	return u + "?" + url.Values{
		"date":  {date},
		"event": {string(dir)},
	}.Encode()
}

// FetchHTML downloads today's board for one direction
func (f *Fetcher) FetchHTML(ctx context.Context, dir Direction) ([]byte, error) {
	log := f.logger()
	target := f.URL(dir, f.today())
	log.Info("Requesting schedule page", "url", target, "direction", dir)

	start := time.Now()
	defer func() { fetchDuration.WithLabelValues(string(dir)).Observe(time.Since(start).Seconds()) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		fetchCount.WithLabelValues(string(dir), outcomeTransportError).Inc()
		return nil, err
	}

	resp, err := f.client().Do(req)
	if err != nil {
		if isTimeout(err) {
			log.Error("Schedule request timed out", "url", target)
		} else {
			log.Error("Schedule request failed", "url", target, "error", err)
		}
		fetchCount.WithLabelValues(string(dir), outcomeTransportError).Inc()
		return nil, err
	}

	if err = checkStatus(resp); err != nil {
		log.Error("Schedule request failed", "url", target, "error", err)
		fetchCount.WithLabelValues(string(dir), outcomeHTTPError).Inc()
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Reading schedule page failed", "url", target, "error", err)
		fetchCount.WithLabelValues(string(dir), outcomeTransportError).Inc()
		return nil, err
	}
	if len(body) == 0 {
		log.Error("Schedule page is empty", "url", target)
		fetchCount.WithLabelValues(string(dir), outcomeHTTPError).Inc()
		return nil, ErrEmptyPage
	}

	fetchCount.WithLabelValues(string(dir), outcomeOK).Inc()
	log.Info("Schedule page loaded", "direction", dir, "bytes", len(body))
	return body, nil
}

// Parse turns a board page into entries in document order. Segments without
// a time or a route are skipped; a broken document yields no entries.
func (f *Fetcher) Parse(html []byte, dir Direction) []models.ScheduleEntry {
	log := f.logger()
	entries := []models.ScheduleEntry{}
	if len(html) == 0 {
		return entries
	}

	page, err := f.extractor().Extract(bytes.NewReader(html), dir)
	if err != nil {
		log.Error("Parsing schedule page failed", "direction", dir, "error", err)
		return entries
	}
	log.Info("Found schedule segments", "direction", dir, "segments", len(page.Segments))

	if len(page.Segments) == 0 {
		log.Warn("No schedule segments on page", "direction", dir)
		if page.Notice != "" {
			log.Info("Page reports no trains", "direction", dir, "notice", page.Notice)
		}
		return entries
	}

	for i, seg := range page.Segments {
		if !seg.Complete() {
			skippedSegments.WithLabelValues(string(dir)).Inc()
			if seg.Err != nil {
				log.Error("Skipping broken segment", "direction", dir, "index", i, "error", seg.Err)
			} else {
				log.Warn("Skipping incomplete segment", "direction", dir, "index", i,
					"has_time", seg.HasTime, "has_route", seg.HasRoute)
			}
			continue
		}
		entries = append(entries, entryFromSegment(seg))
	}
	return entries
}

func (f *Fetcher) today() string {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	return now().Format(DateFormat)
}

// Today returns the date the fetcher uses for its requests
func (f *Fetcher) Today() string {
	return f.today()
}

// Station returns the upstream station code
func (f *Fetcher) Station() string {
	return f.stationCode()
}

func (f *Fetcher) stationCode() string {
	if f.StationCode == "" {
		return SochiStationCode
	}
	return f.StationCode
}

func (f *Fetcher) client() *http.Client {
	if f.Client == nil {
		return NewHTTPClient(DefaultTimeout, "", "")
	}
	return f.Client
}

func (f *Fetcher) extractor() SegmentExtractor {
	if f.Extractor == nil {
		return NewYandexExtractor()
	}
	return f.Extractor
}

func (f *Fetcher) logger() Logger {
	if f.Logger == nil {
		return discardLogger{}
	}
	return f.Logger
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
