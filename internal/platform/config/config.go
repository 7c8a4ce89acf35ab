package config

import (
	"os"
	"time"
)

// Server captures process-level configuration. Values come from the
// environment so main stays lean; optional backends (Postgres, Redis) fall
// back to the in-memory reference implementations when unset.
type Server struct {
	Addr          string
	SweepInterval time.Duration
	PostgresDSN   string
	RedisURL      string
	ReportDir     string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("INSPEKT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	sweep := 15 * time.Second
	if raw := os.Getenv("INSPEKT_SWEEP_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			sweep = d
		}
	}

	reportDir := os.Getenv("INSPEKT_REPORT_DIR")
	if reportDir == "" {
		reportDir = "reports"
	}

	return Server{
		Addr:          addr,
		SweepInterval: sweep,
		PostgresDSN:   os.Getenv("INSPEKT_POSTGRES_DSN"),
		RedisURL:      os.Getenv("INSPEKT_REDIS_URL"),
		ReportDir:     reportDir,
	}
}
