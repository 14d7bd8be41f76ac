// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Zachkp/trailfolio/internal/contact"
	"github.com/Zachkp/trailfolio/internal/trail"
)

type Config struct {
	Port        string
	GinMode     string
	StaticDir   string
	ContentPath string // empty means the built-in profile
	DBPath      string // empty disables theme persistence
	VisitorSalt string
	PrefsMaxAge time.Duration

	AdminUsername string // admin routes stay off unless both are set
	AdminPassword string

	SMTP  contact.SMTPConfig
	Trail trail.Config
}

// FromEnv builds a Config from environment variables, falling back to
// development defaults.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:        getenv("PORT", "8080"),
		GinMode:     os.Getenv("GIN_MODE"),
		StaticDir:   getenv("STATIC_DIR", "./static"),
		ContentPath: os.Getenv("CONTENT_PATH"),
		DBPath:      getenv("DB_PATH", "portfolio.db"),
		VisitorSalt: os.Getenv("VISITOR_SALT"),
		PrefsMaxAge: 365 * 24 * time.Hour,

		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		SMTP: contact.SMTPConfig{
			Host: getenv("SMTP_HOST", "smtp.gmail.com"),
			Port: getenv("SMTP_PORT", "587"),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			To:   os.Getenv("TO_EMAIL"),
		},
		Trail: trail.DefaultConfig(),
	}

	var err error
	if cfg.Trail.Length, err = intEnv("TRAIL_LENGTH", cfg.Trail.Length); err != nil {
		return Config{}, err
	}
	if cfg.Trail.MoveAlpha, err = floatEnv("TRAIL_MOVE_ALPHA", cfg.Trail.MoveAlpha); err != nil {
		return Config{}, err
	}
	if cfg.Trail.TickAlpha, err = floatEnv("TRAIL_TICK_ALPHA", cfg.Trail.TickAlpha); err != nil {
		return Config{}, err
	}
	if cfg.Trail.MinViewportWidth, err = intEnv("TRAIL_MIN_WIDTH", cfg.Trail.MinViewportWidth); err != nil {
		return Config{}, err
	}
	if err := cfg.Trail.Validate(); err != nil {
		return Config{}, fmt.Errorf("trail config: %w", err)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
