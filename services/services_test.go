package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sochi-schedule/models"
)

type stubSource struct {
	result models.ScheduleResult
	calls  int
}

func (s *stubSource) GetStationSchedule(context.Context) models.ScheduleResult {
	s.calls++
	return s.result
}

func (s *stubSource) Today() string   { return "2026-10-18" }
func (s *stubSource) Station() string { return "9623103" }

type memoryRecorder struct {
	records []models.FetchRecord
	err     error
}

func (m *memoryRecorder) RecordFetch(_ context.Context, r models.FetchRecord) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, r)
	return nil
}

func (m *memoryRecorder) RecentFetches(_ context.Context, limit int) ([]models.FetchRecord, error) {
	if limit > len(m.records) {
		limit = len(m.records)
	}
	return m.records[:limit], nil
}

func entries(times ...string) []models.ScheduleEntry {
	out := make([]models.ScheduleEntry, len(times))
	for i, t := range times {
		out[i] = models.ScheduleEntry{Time: t, Train: "6403", Route: "Сочи — Адлер"}
	}
	return out
}

func TestLastEntries(t *testing.T) {
	all := entries("05:00", "06:00", "07:00", "08:00", "09:00")

	if got := LastEntries(all, 2); len(got) != 2 || got[0].Time != "08:00" {
		t.Errorf("LastEntries(2) = %+v", got)
	}
	if got := LastEntries(all, 0); len(got) != 5 {
		t.Errorf("LastEntries(0) returned %d entries", len(got))
	}
	if got := LastEntries(all, 10); len(got) != 5 {
		t.Errorf("LastEntries(10) returned %d entries", len(got))
	}
}

func TestGetScheduleTruncatesAndRecords(t *testing.T) {
	source := &stubSource{result: models.ScheduleResult{
		Arrivals:   entries("05:00", "06:00", "07:00"),
		Departures: entries("08:00"),
	}}
	recorder := &memoryRecorder{}
	svc := NewScheduleService(source, recorder)

	got := svc.GetSchedule(context.Background(), 2)
	if len(got.Arrivals) != 2 || got.TotalArrivals != 3 {
		t.Errorf("arrivals = %d of %d, want 2 of 3", len(got.Arrivals), got.TotalArrivals)
	}
	if len(got.Departures) != 1 || got.TotalDepartures != 1 {
		t.Errorf("departures = %d of %d, want 1 of 1", len(got.Departures), got.TotalDepartures)
	}
	if got.Date != "2026-10-18" || got.Station != "9623103" {
		t.Errorf("date/station = %q/%q", got.Date, got.Station)
	}

	if len(recorder.records) != 1 {
		t.Fatalf("recorded %d fetches, want 1", len(recorder.records))
	}
	if r := recorder.records[0]; r.Arrivals != 3 || r.Departures != 1 || r.Error != "" {
		t.Errorf("record = %+v", r)
	}
}

func TestGetScheduleRecorderFailureIsIgnored(t *testing.T) {
	source := &stubSource{result: models.ScheduleResult{Error: "failed to load arrival data."}}
	svc := NewScheduleService(source, &memoryRecorder{err: errors.New("connection refused")})

	got := svc.GetSchedule(context.Background(), 4)
	if got.Error != "failed to load arrival data." {
		t.Errorf("error = %q", got.Error)
	}
}

func TestHistoryWithoutFetchLog(t *testing.T) {
	svc := NewScheduleService(&stubSource{}, nil)
	if _, err := svc.History(context.Background(), 5); !errors.Is(err, ErrFetchLogDisabled) {
		t.Errorf("err = %v, want ErrFetchLogDisabled", err)
	}
}

func TestParseCommand(t *testing.T) {
	tests := map[string]string{
		"/schedule":              "/schedule",
		"/Schedule@SochiBot now": "/schedule",
		"arrivals":               "/arrivals",
		"   ":                    "",
	}
	for in, want := range tests {
		if got := parseCommand(in); got != want {
			t.Errorf("parseCommand(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProcessMessageSchedule(t *testing.T) {
	source := &stubSource{result: models.ScheduleResult{
		Arrivals:   entries("05:00", "06:00", "07:00"),
		Departures: []models.ScheduleEntry{},
	}}
	chat := NewChatService(NewScheduleService(source, nil), 2)

	resp := chat.ProcessMessage(context.Background(), "s1", "/schedule")
	if !resp.Success || resp.Command != "/schedule" {
		t.Errorf("response = %+v", resp)
	}
	for _, want := range []string{"Arrivals (3):", "  ...", "06:00  6403  Сочи — Адлер", "Departures (0):", "no data"} {
		if !strings.Contains(resp.Message, want) {
			t.Errorf("message missing %q:\n%s", want, resp.Message)
		}
	}
	if strings.Contains(resp.Message, "05:00") {
		t.Errorf("message should only show the last 2 arrivals:\n%s", resp.Message)
	}
}

func TestProcessMessageOneDirectionWithError(t *testing.T) {
	source := &stubSource{result: models.ScheduleResult{
		Arrivals:   []models.ScheduleEntry{},
		Departures: []models.ScheduleEntry{},
		Error:      "failed to load arrival data. failed to load departure data.",
	}}
	chat := NewChatService(NewScheduleService(source, nil), 4)

	resp := chat.ProcessMessage(context.Background(), "s1", "/departures")
	if resp.Success {
		t.Error("expected an unsuccessful response when nothing could be fetched")
	}
	if !strings.Contains(resp.Message, "⚠️ failed to load arrival data.") {
		t.Errorf("message missing error:\n%s", resp.Message)
	}
	if strings.Contains(resp.Message, "Arrivals") {
		t.Errorf("departures-only message lists arrivals:\n%s", resp.Message)
	}
}

func TestProcessMessageHelp(t *testing.T) {
	source := &stubSource{}
	chat := NewChatService(NewScheduleService(source, nil), 4)

	for _, msg := range []string{"/start", "hello there"} {
		resp := chat.ProcessMessage(context.Background(), "s1", msg)
		if resp.Message != helpText {
			t.Errorf("%q: message = %q", msg, resp.Message)
		}
	}
	if source.calls != 0 {
		t.Errorf("help should not fetch the schedule, got %d calls", source.calls)
	}
}
