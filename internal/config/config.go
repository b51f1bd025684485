package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Physics PhysicsConfig `toml:"physics"`
	Frame   FrameConfig   `toml:"frame"`
	Logging LoggingConfig `toml:"logging"`
}

type PhysicsConfig struct {
	FramesPerSecond uint32     `toml:"frames_per_second"`
	MaxSubSteps     uint32     `toml:"max_sub_steps"`
	Gravity         [3]float64 `toml:"gravity"`
	MaxContacts     int        `toml:"max_contacts"`
}

type FrameConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Physics.FramesPerSecond == 0 {
		return fmt.Errorf("physics.frames_per_second must be positive")
	}
	if c.Physics.MaxSubSteps == 0 {
		return fmt.Errorf("physics.max_sub_steps must be positive")
	}
	if c.Frame.TickRate <= 0 {
		return fmt.Errorf("frame.tick_rate must be positive")
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Physics: PhysicsConfig{
			FramesPerSecond: 60,
			MaxSubSteps:     8,
			Gravity:         [3]float64{0, -9.81, 0},
			MaxContacts:     64,
		},
		Frame: FrameConfig{
			TickRate: 16 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
