package trail

import (
	"fmt"
	"time"
)

// Config holds the tuning for a follower chain and its effect.
type Config struct {
	Length           int           `json:"length"`
	MoveAlpha        float64       `json:"moveAlpha"`
	TickAlpha        float64       `json:"tickAlpha"`
	Sentinel         Dot           `json:"sentinel"`
	Radius           float64       `json:"radius"`
	MinViewportWidth int           `json:"minViewportWidth"`
	FrameInterval    time.Duration `json:"-"`
	Colors           [2]string     `json:"colors"`
}

func DefaultConfig() Config {
	return Config{
		Length:           9,
		MoveAlpha:        0.35,
		TickAlpha:        0.2,
		Sentinel:         Dot{X: -100, Y: -100},
		Radius:           6,
		MinViewportWidth: 768,
		FrameInterval:    16 * time.Millisecond,
		Colors:           [2]string{"#6366f1", "#ec4899"},
	}
}

func (c Config) Validate() error {
	if c.Length < 1 {
		return fmt.Errorf("trail length must be at least 1, got %d", c.Length)
	}
	if c.MoveAlpha <= 0 || c.MoveAlpha > 1 {
		return fmt.Errorf("move alpha must be in (0, 1], got %v", c.MoveAlpha)
	}
	if c.TickAlpha <= 0 || c.TickAlpha > 1 {
		return fmt.Errorf("tick alpha must be in (0, 1], got %v", c.TickAlpha)
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("frame interval must be positive, got %v", c.FrameInterval)
	}
	return nil
}
