package database

import (
	"database/sql"
	"log"
)

const createFetchLog = `
	CREATE TABLE IF NOT EXISTS schedule_fetches (
		id          SERIAL PRIMARY KEY,
		fetched_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		arrivals    INTEGER NOT NULL,
		departures  INTEGER NOT NULL,
		error       TEXT NOT NULL DEFAULT '',
		duration_ms BIGINT NOT NULL
	)
`

// RunMigrations ensures the fetch log table exists
func RunMigrations(db *sql.DB) error {
	log.Println("Checking database schema...")

	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = 'schedule_fetches'
		)
	`).Scan(&exists)

	if err != nil {
		return err
	}

	if exists {
		log.Println("Database schema already exists, skipping migrations")
		return nil
	}

	if _, err := db.Exec(createFetchLog); err != nil {
		return err
	}
	log.Println("Created schedule_fetches table")
	return nil
}
