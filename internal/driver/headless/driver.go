// Package headless ticks the simulation on a fixed wall-clock interval with
// no window. It is the driver for servers, soak runs and CI.
package headless

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/topdown/shooter/internal/game"
	"github.com/topdown/shooter/internal/input"
)

type Options struct {
	Interval       time.Duration
	MaxTicks       uint64 // 0 = until ctx is done
	LogEvery       uint64 // 0 = no periodic summary
	Autopilot      bool   // circle the cursor and hold the trigger
	ExitOnGameOver bool
}

type Driver struct {
	app         *game.App
	opts        Options
	log         *zap.Logger
	flushErrors int
}

func New(app *game.App, opts Options, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	return &Driver{app: app, opts: opts, log: log.With(zap.String("driver", "headless"))}
}

// Run blocks until ctx is done, MaxTicks ticks have run, or the game ends
// with ExitOnGameOver set. Flush errors are logged by the runner and do not
// stop the loop.
func (d *Driver) Run(ctx context.Context) error {
	if err := d.app.Startup(); err != nil {
		return err
	}
	d.log.Info("headless loop started",
		zap.Duration("interval", d.opts.Interval),
		zap.Uint64("max_ticks", d.opts.MaxTicks),
		zap.Bool("autopilot", d.opts.Autopilot),
	)

	if d.opts.Autopilot {
		d.app.Input().PushButton(input.MouseLeft, input.Pressed)
	}

	ticker := time.NewTicker(d.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.summary("headless loop stopped")
			return nil
		case <-ticker.C:
			if d.opts.Autopilot {
				d.steer()
			}
			if err := d.app.Tick(); err != nil {
				d.flushErrors++
			}
			n := d.app.Ticks()
			if d.opts.LogEvery > 0 && n%d.opts.LogEvery == 0 {
				d.summary("tick")
			}
			if d.opts.MaxTicks > 0 && n >= d.opts.MaxTicks {
				d.summary("tick limit reached")
				return nil
			}
			if d.opts.ExitOnGameOver && d.app.Over() {
				d.summary("game over, exiting")
				return nil
			}
		}
	}
}

// steer moves the cursor around a circle centred on the window.
func (d *Driver) steer() {
	w := d.app.Window()
	r := math.Min(w.Width, w.Height) / 3
	a := float64(d.app.Ticks()) * 0.02
	d.app.Input().PushCursor(w.Width/2+r*math.Cos(a), w.Height/2+r*math.Sin(a))
}

func (d *Driver) summary(msg string) {
	c := d.app.Counts()
	s := d.app.Session()
	d.log.Info(msg,
		zap.Uint64("tick", d.app.Ticks()),
		zap.Int("entities", c.Entities),
		zap.Int("bullets", c.Bullets),
		zap.Int("enemies", c.Enemies),
		zap.Int("kills", s.Kills),
		zap.Bool("over", s.Over),
		zap.Int("flush_errors", d.flushErrors),
	)
}
