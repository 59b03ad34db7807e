package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
)

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Tick    TickConfig    `toml:"tick"`
	Driver  DriverConfig  `toml:"driver"`
	Game    GameConfig    `toml:"game"`
	Logging LoggingConfig `toml:"logging"`
}

type WindowConfig struct {
	Title     string  `toml:"title"`
	Width     float64 `toml:"width"`
	Height    float64 `toml:"height"`
	Resizable bool    `toml:"resizable"`
}

type TickConfig struct {
	Interval time.Duration `toml:"interval"`
}

type DriverConfig struct {
	Kind      string `toml:"kind"`       // "window", "terminal" or "headless"
	MaxTicks  uint64 `toml:"max_ticks"`  // 0 = run until stopped
	Autopilot bool   `toml:"autopilot"`  // headless: synthesise cursor and fire input
	LogEvery  uint64 `toml:"log_every"`  // headless: ticks between summaries, 0 = never
	InputSize int    `toml:"input_size"` // input queue capacity
}

type GameConfig struct {
	Seed           int64  `toml:"seed"` // 0 = seed from the clock
	TuningPath     string `toml:"tuning_path"`
	ScriptsDir     string `toml:"scripts_dir"` // "" disables Lua hooks
	ExitOnGameOver bool   `toml:"exit_on_game_over"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // "" = stderr; the terminal driver defaults to shooter.log
}

const (
	DriverWindow   = "window"
	DriverTerminal = "terminal"
	DriverHeadless = "headless"
)

var ErrInvalid = errors.New("invalid config")

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default is the configuration of the windowed tutorial build.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "Game Title",
			Width:     480,
			Height:    320,
			Resizable: false,
		},
		Tick: TickConfig{
			Interval: time.Second / 60,
		},
		Driver: DriverConfig{
			Kind:      DriverWindow,
			LogEvery:  60,
			InputSize: 256,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports every bad field at once.
func (c *Config) Validate() error {
	var errs error
	bad := func(format string, args ...any) {
		errs = multierr.Append(errs, fmt.Errorf(format+": %w", append(args, ErrInvalid)...))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		bad("window %vx%v", c.Window.Width, c.Window.Height)
	}
	if c.Tick.Interval <= 0 {
		bad("tick.interval %s", c.Tick.Interval)
	}
	switch c.Driver.Kind {
	case DriverWindow, DriverTerminal, DriverHeadless:
	default:
		bad("driver.kind %q", c.Driver.Kind)
	}
	if c.Driver.InputSize < 0 {
		bad("driver.input_size %d", c.Driver.InputSize)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		bad("logging.format %q", c.Logging.Format)
	}
	return errs
}
