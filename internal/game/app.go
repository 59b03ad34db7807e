// Package game composes the simulation: world, resources, event bus,
// runner and the gameplay plugins. Drivers own an App and call Tick.
package game

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/topdown/shooter/internal/component"
	"github.com/topdown/shooter/internal/config"
	"github.com/topdown/shooter/internal/core/ecs"
	"github.com/topdown/shooter/internal/core/event"
	"github.com/topdown/shooter/internal/core/resource"
	coresys "github.com/topdown/shooter/internal/core/system"
	"github.com/topdown/shooter/internal/data"
	"github.com/topdown/shooter/internal/input"
	"github.com/topdown/shooter/internal/scripting"
	"github.com/topdown/shooter/internal/system"
	"github.com/topdown/shooter/internal/world"
)

// ErrWindowTooSmall means the enemy exclusion disc covers more than half
// the window, so spawn placement could resample for a very long time.
var ErrWindowTooSmall = errors.New("window too small for enemy spawn distance")

// Options carries everything New needs. Scripts and Log may be nil.
type Options struct {
	Window  config.WindowConfig
	Tick    time.Duration
	Tuning  data.Tuning
	Seed    int64
	Input   *input.Queue
	Scripts *scripting.Engine
	Log     *zap.Logger
}

type App struct {
	world     *ecs.World
	resources *resource.Store
	bus       *event.Bus
	runner    *coresys.Runner
	input     *input.Queue
	tick      time.Duration
	enemy     data.EnemyTuning
	log       *zap.Logger
}

func New(opts Options) (*App, error) {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Input == nil {
		opts.Input = input.NewQueue(0)
	}
	if err := opts.Tuning.Validate(); err != nil {
		return nil, err
	}
	if err := checkSpawnRoom(opts.Window, opts.Tuning.Enemy); err != nil {
		return nil, err
	}

	a := &App{
		world:     ecs.NewWorld(),
		resources: resource.NewStore(),
		bus:       event.NewBus(),
		input:     opts.Input,
		tick:      opts.Tick,
		enemy:     opts.Tuning.Enemy,
		log:       opts.Log,
	}
	a.runner = coresys.NewRunner(a.world, a.resources, a.bus, opts.Log)

	if err := resource.Insert(a.resources, world.Window{
		Title:     opts.Window.Title,
		Width:     opts.Window.Width,
		Height:    opts.Window.Height,
		Resizable: opts.Window.Resizable,
	}); err != nil {
		return nil, err
	}
	if err := resource.Insert(a.resources, world.NewRandom(opts.Seed)); err != nil {
		return nil, err
	}

	var (
		pacer    system.Pacer
		epilogue system.Epilogue
	)
	if opts.Scripts != nil {
		pacer, epilogue = opts.Scripts, opts.Scripts
	}
	for _, p := range system.Plugins(opts.Tuning, a.input, 0, pacer, epilogue) {
		if err := a.runner.AddPlugin(p); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func checkSpawnRoom(w config.WindowConfig, t data.EnemyTuning) error {
	return checkSpawnArea(w.Width, w.Height, t)
}

func checkSpawnArea(width, height float64, t data.EnemyTuning) error {
	disc := math.Pi * t.MinSpawnDistSq
	if half := width * height / 2; disc > half {
		return fmt.Errorf("%vx%v with min distance² %v: %w", width, height, t.MinSpawnDistSq, ErrWindowTooSmall)
	}
	return nil
}

// AddPlugin registers extra systems before Startup.
func (a *App) AddPlugin(p coresys.Plugin) error { return a.runner.AddPlugin(p) }

func (a *App) Startup() error { return a.runner.Startup() }

// Tick advances the simulation by one tick.
func (a *App) Tick() error { return a.runner.Tick(a.tick) }

func (a *App) Ticks() uint64              { return a.runner.Ticks() }
func (a *App) Input() *input.Queue        { return a.input }
func (a *App) World() *ecs.World          { return a.world }
func (a *App) Resources() *resource.Store { return a.resources }
func (a *App) Events() *event.Bus         { return a.bus }

// Window returns the current window descriptor.
func (a *App) Window() world.Window {
	w, _ := resource.Peek[world.Window](a.resources)
	return w
}

// Resize updates the window resource between ticks. A size too small for
// enemy placement is refused and the previous window is kept.
func (a *App) Resize(width, height float64) error {
	w := a.Window()
	if w.Width == width && w.Height == height {
		return nil
	}
	if err := checkSpawnArea(width, height, a.enemy); err != nil {
		a.log.Warn("resize refused", zap.Float64("width", width), zap.Float64("height", height), zap.Error(err))
		return err
	}
	w.Width, w.Height = width, height
	resource.Set(a.resources, w)
	a.log.Debug("window resized", zap.Float64("width", width), zap.Float64("height", height))
	return nil
}

func (a *App) Session() world.Session {
	s, _ := resource.Peek[world.Session](a.resources)
	return s
}

func (a *App) Over() bool { return a.Session().Over }

// Drawable is what a renderer needs for one entity.
type Drawable struct {
	ID        ecs.EntityID
	Transform component.Transform
	Sprite    component.Sprite
	Hidden    bool // enemies still appearing
}

// Drawables calls fn for every entity with a sprite in insertion order.
func (a *App) Drawables(fn func(Drawable)) {
	ecs.NewQuery2[component.Sprite, component.Transform](a.world, ecs.ReadOnly()).Each(
		func(id ecs.EntityID, sp *component.Sprite, tf *component.Transform) {
			d := Drawable{ID: id, Transform: *tf, Sprite: *sp}
			if e, ok := ecs.Get[component.Enemy](a.world, id); ok {
				d.Hidden = !e.Active()
			}
			fn(d)
		})
}

// Counts is a per-kind census of the world.
type Counts struct {
	Entities int
	Players  int
	Bullets  int
	Enemies  int
}

func (a *App) Counts() Counts {
	return Counts{
		Entities: a.world.Len(),
		Players:  ecs.NewQuery[component.PlayerShip](a.world, ecs.ReadOnly()).Count(),
		Bullets:  ecs.NewQuery[component.Bullet](a.world, ecs.ReadOnly()).Count(),
		Enemies:  ecs.NewQuery[component.Enemy](a.world, ecs.ReadOnly()).Count(),
	}
}

// Player returns the ship's transform. ok is false before Startup.
func (a *App) Player() (component.Transform, bool) {
	_, tf, ok := ecs.NewQuery[component.Transform](a.world, ecs.With[component.PlayerShip](), ecs.ReadOnly()).Single()
	if !ok {
		return component.Transform{}, false
	}
	return *tf, true
}
