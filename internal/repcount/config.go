package repcount

import (
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymxp/internal/pose/filter"
)

var ErrInvalidConfig = errors.New("invalid rep counter config")

type Config struct {
	WindowSize     int           `toml:"window_size" json:"windowSize"`
	MinConfidence  float64       `toml:"min_confidence" json:"minConfidence"`
	Knee           Thresholds    `toml:"knee" json:"knee"`
	Hip            Thresholds    `toml:"hip" json:"hip"`
	MinRepInterval time.Duration `toml:"min_rep_interval" json:"minRepInterval"`
	MaxLostFrames  int           `toml:"max_lost_frames" json:"maxLostFrames"`
	UseFilter      bool          `toml:"use_filter" json:"useFilter"`
	Filter         filter.Config `toml:"filter" json:"filter"`
}

// DefaultConfig holds thresholds tuned for bodyweight squats.
func DefaultConfig() Config {
	return Config{
		WindowSize:    5,
		MinConfidence: 0.5,
		Knee: Thresholds{
			DownBelow: 100,
			UpAbove:   160,
		},
		Hip: Thresholds{
			DownBelow: 110,
			UpAbove:   165,
		},
		MinRepInterval: 400 * time.Millisecond,
		MaxLostFrames:  15,
		UseFilter:      true,
		Filter:         filter.DefaultConfig(),
	}
}

func (c Config) Validate() error {
	if c.WindowSize <= 0 {
		return fmt.Errorf("%w: window size %d", ErrInvalidConfig, c.WindowSize)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("%w: min confidence %.2f", ErrInvalidConfig, c.MinConfidence)
	}
	if c.MinRepInterval < 0 || c.MaxLostFrames < 0 {
		return fmt.Errorf("%w: negative rep interval or lost frames", ErrInvalidConfig)
	}
	if err := c.Knee.Validate(); err != nil {
		return fmt.Errorf("knee: %w", err)
	}
	if err := c.Hip.Validate(); err != nil {
		return fmt.Errorf("hip: %w", err)
	}
	if c.UseFilter {
		if err := c.Filter.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}
