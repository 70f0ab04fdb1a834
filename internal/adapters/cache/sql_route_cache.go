package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// SQLRouteCache is a Postgres-backed cache of resolved routes keyed by
// waypoint sequence.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

func (s *SQLRouteCache) Get(ctx context.Context, key string) (_ *ports.RouteResult, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("route cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, errors.New("get route cache: key must not be empty")
	}

	var payload []byte
	q := `SELECT payload FROM route_cache WHERE cache_key = $1;`
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&payload)
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

func (s *SQLRouteCache) Put(ctx context.Context, key string, result *ports.RouteResult) (err error) {
	defer obs.Time(ctx, "route.cache.Put")(&err)

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
	VALUES ($1, $2)
	ON CONFLICT (cache_key) DO UPDATE
	SET payload = EXCLUDED.payload;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, payload); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
