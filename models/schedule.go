package models

import "time"

// ScheduleEntry is one train on the station board
type ScheduleEntry struct {
	Time  string `json:"time"`
	Train string `json:"train"`
	Route string `json:"route"`
}

// ScheduleResult holds today's arrivals and departures for the station.
// An empty Error means the fetch produced no error text.
type ScheduleResult struct {
	Arrivals   []ScheduleEntry `json:"arrivals"`
	Departures []ScheduleEntry `json:"departures"`
	Error      string          `json:"error,omitempty"`
}

// FetchRecord summarizes one schedule fetch for the fetch log
type FetchRecord struct {
	ID         int           `json:"id"`
	FetchedAt  time.Time     `json:"fetched_at"`
	Arrivals   int           `json:"arrivals"`
	Departures int           `json:"departures"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"duration_ns"`
}

// ScheduleResponse is the schedule as served to front-ends, possibly truncated
type ScheduleResponse struct {
	Date            string          `json:"date"`
	Station         string          `json:"station"`
	Arrivals        []ScheduleEntry `json:"arrivals"`
	Departures      []ScheduleEntry `json:"departures"`
	TotalArrivals   int             `json:"total_arrivals"`
	TotalDepartures int             `json:"total_departures"`
	Error           string          `json:"error,omitempty"`
}
