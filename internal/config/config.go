package config

import "os"

// Config carries the environment-driven settings for the binaries.
// Values come from the process environment, optionally seeded from a
// .env file by the caller.
type Config struct {
	// HTTP listen port.
	Port string
	// SQLite database path (trips, logs, local route cache).
	DBPath string
	// OpenRouteService API key; required by the server.
	ORSAPIKey string
	// Optional Postgres URL; when set, the route cache lives there.
	DatabaseURL string
	// Optional Redis address; when set, takes precedence for the
	// route cache.
	RedisAddr string
}

// Load reads the configuration from the environment with local-run
// defaults.
func Load() Config {
	return Config{
		Port:        getEnv("PORT", "8080"),
		DBPath:      getEnv("DB_PATH", "data/app.db"),
		ORSAPIKey:   os.Getenv("ORS_API_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
