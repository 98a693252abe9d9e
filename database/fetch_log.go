package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sochi-schedule/models"
)

// FetchLog stores one summary row per schedule fetch
type FetchLog struct {
	db *sql.DB
}

// NewFetchLog returns a fetch log backed by db
func NewFetchLog(db *sql.DB) *FetchLog {
	return &FetchLog{db: db}
}

// RecordFetch appends a fetch summary
func (l *FetchLog) RecordFetch(ctx context.Context, r models.FetchRecord) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO schedule_fetches (fetched_at, arrivals, departures, error, duration_ms)
		VALUES ($1, $2, $3, $4, $5)
	`, r.FetchedAt, r.Arrivals, r.Departures, r.Error, r.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to record fetch: %w", err)
	}
	return nil
}

// RecentFetches returns up to limit rows, newest first
func (l *FetchLog) RecentFetches(ctx context.Context, limit int) ([]models.FetchRecord, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, fetched_at, arrivals, departures, error, duration_ms
		FROM schedule_fetches
		ORDER BY fetched_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.FetchRecord{}
	for rows.Next() {
		var r models.FetchRecord
		var durationMS int64
		err := rows.Scan(&r.ID, &r.FetchedAt, &r.Arrivals, &r.Departures, &r.Error, &durationMS)
		if err != nil {
			return nil, err
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, r)
	}

	return records, rows.Err()
}
