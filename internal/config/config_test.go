package config

import (
	"strings"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STATIC_DIR", "DB_PATH", "SMTP_HOST", "SMTP_PORT", "TRAIL_LENGTH", "TRAIL_MOVE_ALPHA", "TRAIL_TICK_ALPHA", "TRAIL_MIN_WIDTH"} {
		t.Setenv(k, "")
	}

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Port != "8080" || cfg.SMTP.Host != "smtp.gmail.com" || cfg.SMTP.Port != "587" {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.Trail.Length != 9 || cfg.Trail.MoveAlpha != 0.35 || cfg.Trail.TickAlpha != 0.2 || cfg.Trail.MinViewportWidth != 768 {
		t.Errorf("Unexpected trail defaults: %+v", cfg.Trail)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TRAIL_LENGTH", "12")
	t.Setenv("TRAIL_TICK_ALPHA", "0.1")
	t.Setenv("TRAIL_MIN_WIDTH", "1024")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Port != "9000" || cfg.Trail.Length != 12 || cfg.Trail.TickAlpha != 0.1 || cfg.Trail.MinViewportWidth != 1024 {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"TRAIL_LENGTH", "many", "TRAIL_LENGTH"},
		{"TRAIL_MOVE_ALPHA", "fast", "TRAIL_MOVE_ALPHA"},
		{"TRAIL_LENGTH", "0", "trail config"},
		{"TRAIL_TICK_ALPHA", "2", "trail config"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
