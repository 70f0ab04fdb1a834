package repositories

import (
	"database/sql"
	"fmt"
)

// InitSchema creates the persistence tables when they do not exist.
// Run at startup for local installs; cmd/dbtool owns the Postgres
// variant of the route cache schema.
func InitSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS trips (
			trip_id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			current_lat REAL NOT NULL,
			current_lon REAL NOT NULL,
			pickup_lat REAL NOT NULL,
			pickup_lon REAL NOT NULL,
			dropoff_lat REAL NOT NULL,
			dropoff_lon REAL NOT NULL,
			current_cycle_hours_used REAL NOT NULL DEFAULT 0,
			planned_distance_m REAL NOT NULL DEFAULT 0,
			planned_duration_s REAL NOT NULL DEFAULT 0,
			geometry TEXT NOT NULL DEFAULT '{}'
		);`,
		`CREATE TABLE IF NOT EXISTS stops (
			trip_id INTEGER NOT NULL REFERENCES trips(trip_id) ON DELETE CASCADE,
			sequence_index INTEGER NOT NULL,
			type TEXT NOT NULL,
			at_time_s REAL NOT NULL DEFAULT 0,
			lat REAL,
			lon REAL,
			PRIMARY KEY (trip_id, sequence_index)
		);`,
		`CREATE TABLE IF NOT EXISTS eld_logs (
			trip_id INTEGER NOT NULL REFERENCES trips(trip_id) ON DELETE CASCADE,
			day_index INTEGER NOT NULL,
			generated_at TEXT NOT NULL,
			sheet TEXT NOT NULL,
			PRIMARY KEY (trip_id, day_index)
		);`,
		`CREATE TABLE IF NOT EXISTS route_cache (
			cache_key TEXT PRIMARY KEY,
			payload BLOB NOT NULL
		);`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}
