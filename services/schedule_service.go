package services

import (
	"context"
	"errors"
	"log"
	"time"

	"sochi-schedule/models"
)

// ErrFetchLogDisabled is returned by History when no fetch log is configured
var ErrFetchLogDisabled = errors.New("fetch log is disabled")

// ScheduleSource produces today's station board
type ScheduleSource interface {
	GetStationSchedule(ctx context.Context) models.ScheduleResult
	Today() string
	Station() string
}

// FetchRecorder keeps fetch summaries
type FetchRecorder interface {
	RecordFetch(ctx context.Context, r models.FetchRecord) error
	RecentFetches(ctx context.Context, limit int) ([]models.FetchRecord, error)
}

// ScheduleService serves the station board to the web and chat front-ends
type ScheduleService struct {
	source   ScheduleSource
	recorder FetchRecorder
	now      func() time.Time
}

// NewScheduleService creates a schedule service; recorder may be nil
func NewScheduleService(source ScheduleSource, recorder FetchRecorder) *ScheduleService {
	return &ScheduleService{
		source:   source,
		recorder: recorder,
		now:      time.Now,
	}
}

// GetSchedule fetches today's board and keeps the last limit entries of each
// direction. A limit of zero or less keeps everything.
func (s *ScheduleService) GetSchedule(ctx context.Context, limit int) *models.ScheduleResponse {
	start := s.now()
	result := s.source.GetStationSchedule(ctx)
	s.record(ctx, start, result)

	return &models.ScheduleResponse{
		Date:            s.source.Today(),
		Station:         s.source.Station(),
		Arrivals:        LastEntries(result.Arrivals, limit),
		Departures:      LastEntries(result.Departures, limit),
		TotalArrivals:   len(result.Arrivals),
		TotalDepartures: len(result.Departures),
		Error:           result.Error,
	}
}

// History returns the most recent fetch summaries
func (s *ScheduleService) History(ctx context.Context, limit int) ([]models.FetchRecord, error) {
	if s.recorder == nil {
		return nil, ErrFetchLogDisabled
	}
	if limit <= 0 {
		limit = 20
	}
	return s.recorder.RecentFetches(ctx, limit)
}

func (s *ScheduleService) record(ctx context.Context, start time.Time, result models.ScheduleResult) {
	if s.recorder == nil {
		return
	}

	err := s.recorder.RecordFetch(ctx, models.FetchRecord{
		FetchedAt:  start,
		Arrivals:   len(result.Arrivals),
		Departures: len(result.Departures),
		Error:      result.Error,
		Duration:   s.now().Sub(start),
	})
	if err != nil {
		log.Printf("Failed to record schedule fetch: %v", err)
	}
}

// LastEntries returns the last n entries, or all of them when n <= 0
func LastEntries(entries []models.ScheduleEntry, n int) []models.ScheduleEntry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[len(entries)-n:]
}
