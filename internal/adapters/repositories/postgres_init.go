package repositories

import (
	"database/sql"
	"fmt"
)

// InitPostgresCacheSchema creates the shared route cache table on
// Postgres. Run by cmd/dbtool against DATABASE_URL.
func InitPostgresCacheSchema(db *sql.DB) error {
	stmt := `
	CREATE TABLE IF NOT EXISTS route_cache (
		cache_key TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	);`

	if _, err := db.Exec(stmt); err != nil {
		return fmt.Errorf("init postgres cache schema: %w", err)
	}

	return nil
}
