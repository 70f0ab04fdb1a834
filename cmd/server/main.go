package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/adapters/route"
	"trip-planner-service/internal/api"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Postgres/Redis caches, ORS)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()

	if strings.TrimSpace(cfg.ORSAPIKey) == "" {
		log.Fatal("ORS_API_KEY is required")
	}

	sqliteDB, err := openDB(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	// Initialize the local schema on startup for local runs.
	if err := repositories.InitSchema(sqliteDB); err != nil {
		log.Fatal(err)
	}

	routeCache, cleanup, err := buildRouteCache(cfg, sqliteDB)
	if err != nil {
		log.Fatal(err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	// ORS provider consults the persistent route cache to avoid
	// repeated directions calls for the same waypoints.
	provider, err := route.NewORSRouteProvider(cfg.ORSAPIKey, routeCache)
	if err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewSqliteTripRepository(sqliteDB)
	router := api.NewRouter(repo, provider, services.DefaultLimits())

	// Timeouts are tuned for cold-cache route planning (external API latency).
	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildRouteCache picks the route cache backend: Redis when configured,
// then shared Postgres, falling back to the local SQLite database.
func buildRouteCache(cfg config.Config, sqliteDB *sql.DB) (ports.RouteCache, func(), error) {
	if cfg.RedisAddr != "" {
		c, err := cache.NewRedisRouteCache(cfg.RedisAddr, cache.DefaultRouteTTL)
		if err != nil {
			return nil, nil, fmt.Errorf("build route cache: %w", err)
		}
		log.Printf("route cache backend=redis addr=%s", cfg.RedisAddr)
		return c, func() { _ = c.Close() }, nil
	}

	if cfg.DatabaseURL != "" {
		pg, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("build route cache: %w", err)
		}
		log.Printf("route cache backend=postgres")
		return cache.NewSQLRouteCache(pg), func() { _ = pg.Close() }, nil
	}

	log.Printf("route cache backend=sqlite path=%s", cfg.DBPath)
	return cache.NewSqliteRouteCache(sqliteDB), nil, nil
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}
