package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/topdown/shooter/internal/config"
	"github.com/topdown/shooter/internal/data"
	"github.com/topdown/shooter/internal/driver/headless"
	"github.com/topdown/shooter/internal/driver/terminal"
	"github.com/topdown/shooter/internal/driver/window"
	"github.com/topdown/shooter/internal/game"
	"github.com/topdown/shooter/internal/input"
	"github.com/topdown/shooter/internal/scripting"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(title string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Printf("\033[36;1m  │\033[0m %-41s \033[36;1m│\033[0m\n", title)
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printStat(label string, value string) {
	dotsLen := 42 - len(label) - len(value)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), value)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Main logic ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/shooter.toml"
	if p := os.Getenv("SHOOTER_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Driver.Kind == config.DriverTerminal && cfg.Logging.File == "" {
		cfg.Logging.File = "shooter.log"
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	log = log.With(zap.String("run", uuid.New().String()))

	printBanner(cfg.Window.Title)

	// 3. Gameplay data
	tuning, err := data.LoadTuning(cfg.Game.TuningPath)
	if err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	printOK("tuning loaded")

	var scripts *scripting.Engine
	if cfg.Game.ScriptsDir != "" {
		scripts, err = scripting.NewEngine(cfg.Game.ScriptsDir, log)
		if err != nil {
			return fmt.Errorf("scripts: %w", err)
		}
		defer scripts.Close()
		printOK("lua scripts loaded")
	}

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// 4. Compose the simulation
	app, err := game.New(game.Options{
		Window:  cfg.Window,
		Tick:    cfg.Tick.Interval,
		Tuning:  tuning,
		Seed:    seed,
		Input:   input.NewQueue(cfg.Driver.InputSize),
		Scripts: scripts,
		Log:     log,
	})
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}

	printStat("window", fmt.Sprintf("%vx%v", cfg.Window.Width, cfg.Window.Height))
	printStat("driver", cfg.Driver.Kind)
	printStat("seed", fmt.Sprintf("%d", seed))
	fmt.Println()

	// 5. Run until the driver stops or a signal arrives
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting", zap.String("driver", cfg.Driver.Kind), zap.Int64("seed", seed))
	switch cfg.Driver.Kind {
	case config.DriverHeadless:
		err = headless.New(app, headless.Options{
			Interval:       cfg.Tick.Interval,
			MaxTicks:       cfg.Driver.MaxTicks,
			LogEvery:       cfg.Driver.LogEvery,
			Autopilot:      cfg.Driver.Autopilot,
			ExitOnGameOver: cfg.Game.ExitOnGameOver,
		}, log).Run(ctx)
	case config.DriverTerminal:
		err = runTerminal(ctx, app, cfg, log)
	default:
		err = window.New(ctx, app, window.Options{
			TPS:            int(time.Second / cfg.Tick.Interval),
			MaxTicks:       cfg.Driver.MaxTicks,
			ExitOnGameOver: cfg.Game.ExitOnGameOver,
			Assets:         os.DirFS("assets"),
		}, log).Run()
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	s := app.Session()
	log.Info("stopped",
		zap.Uint64("ticks", app.Ticks()),
		zap.Int("kills", s.Kills),
		zap.Int("shots", s.Shots),
		zap.Bool("game_over", s.Over),
	)
	return nil
}

func runTerminal(ctx context.Context, app *game.App, cfg *config.Config, log *zap.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()
	return terminal.New(app, screen, terminal.Options{
		Interval:       cfg.Tick.Interval,
		MaxTicks:       cfg.Driver.MaxTicks,
		ExitOnGameOver: cfg.Game.ExitOnGameOver,
	}, log).Run(ctx)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		if cfg.Format != "json" {
			zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		}
	}

	return zapCfg.Build()
}
