package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"trip-planner-service/internal/ports"
)

// SQLite backed cache of resolved routes keyed by waypoint sequence.
// Keys are expected to be consistent (already normalized) by the caller.
type SqliteRouteCache struct {
	DB *sql.DB
}

func NewSqliteRouteCache(db *sql.DB) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db}
}

func (s *SqliteRouteCache) Get(ctx context.Context, key string) (*ports.RouteResult, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("route cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, errors.New("get route cache: key must not be empty")
	}

	var payload []byte
	q := `SELECT payload FROM route_cache WHERE cache_key = ?;`
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	var result ports.RouteResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, false, fmt.Errorf("get route cache: decode payload for %q: %w", key, err)
	}

	return &result, true, nil
}

func (s *SqliteRouteCache) Put(ctx context.Context, key string, result *ports.RouteResult) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("insert route cache: encode payload for %q: %w", key, err)
	}

	q := `
	INSERT INTO route_cache (cache_key, payload)
	VALUES (?, ?)
	ON CONFLICT (cache_key) DO UPDATE
	SET payload = excluded.payload;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, payload); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
