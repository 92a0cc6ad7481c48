package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the process configuration, read once at startup.
type Config struct {
	Addr         string
	Location     *time.Location
	RemindDays   int
	RateLimit    int
	RateWindow   time.Duration
	DatabaseURL  string
	RedisAddr    string
	FCMServerKey string
	SMTPAddr     string
	SMTPFrom     string
}

// Load reads configuration from the environment. The configured time zone is
// resolved here, exactly once; a zone that cannot be resolved is an error and
// the process must not start without one, since every due-window and catch-up
// computation depends on stable day boundaries.
func Load() (Config, error) {
	cfg := Config{
		Addr:         os.Getenv("ADDR"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		FCMServerKey: os.Getenv("FCM_SERVER_KEY"),
		SMTPAddr:     os.Getenv("SMTP_ADDR"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	tz := os.Getenv("TZ")
	if tz == "" {
		tz = "Asia/Singapore"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Config{}, fmt.Errorf("resolve time zone %q: %w", tz, err)
	}
	cfg.Location = loc

	cfg.RemindDays = 7
	if raw := os.Getenv("REMIND_DAYS"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			return Config{}, fmt.Errorf("invalid REMIND_DAYS %q", raw)
		}
		cfg.RemindDays = days
	}

	cfg.RateLimit = 5
	if raw := os.Getenv("RATE_LIMIT"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT %q", raw)
		}
		cfg.RateLimit = limit
	}

	cfg.RateWindow = time.Minute
	if raw := os.Getenv("RATE_WINDOW"); raw != "" {
		window, err := time.ParseDuration(raw)
		if err != nil || window <= 0 {
			return Config{}, fmt.Errorf("invalid RATE_WINDOW %q", raw)
		}
		cfg.RateWindow = window
	}

	return cfg, nil
}
