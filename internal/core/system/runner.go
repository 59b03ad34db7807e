package system

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/topdown/shooter/internal/core/ecs"
	"github.com/topdown/shooter/internal/core/event"
	"github.com/topdown/shooter/internal/core/resource"
)

// ErrStarted is returned by AddPlugin once Startup has run: the plugin's
// startup systems would never execute.
var ErrStarted = errors.New("system: runner already started")

// Runner executes systems in phase order each tick. Within a phase systems
// run in registration order. After the last system the command buffer is
// flushed once and the event bus compacted.
type Runner struct {
	world     *ecs.World
	commands  *ecs.Commands
	resources *resource.Store
	bus       *event.Bus
	log       *zap.Logger

	systems []System
	sorted  bool
	plugins map[string]struct{}
	tick    uint64
	started bool
}

func NewRunner(w *ecs.World, res *resource.Store, bus *event.Bus, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		world:     w,
		commands:  ecs.NewCommands(w),
		resources: res,
		bus:       bus,
		log:       log,
		systems:   make([]System, 0, 16),
		plugins:   make(map[string]struct{}, 8),
	}
}

func (r *Runner) World() *ecs.World          { return r.world }
func (r *Runner) Resources() *resource.Store { return r.resources }
func (r *Runner) Events() *event.Bus         { return r.bus }
func (r *Runner) Log() *zap.Logger           { return r.log }

// Ticks returns how many ticks have completed.
func (r *Runner) Ticks() uint64 { return r.tick }

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// AddPlugin builds p once. A second plugin with the same name is ignored.
// Plugins must be added before Startup.
func (r *Runner) AddPlugin(p Plugin) error {
	name := p.Name()
	if _, ok := r.plugins[name]; ok {
		return nil
	}
	if r.started {
		return fmt.Errorf("plugin %s: %w", name, ErrStarted)
	}
	if err := p.Build(r); err != nil {
		return fmt.Errorf("plugin %s: %w", name, err)
	}
	r.plugins[name] = struct{}{}
	r.log.Debug("plugin registered", zap.String("plugin", name))
	return nil
}

// Startup runs the startup phase once and applies its commands so the first
// tick sees the initial entities.
func (r *Runner) Startup() error {
	if r.started {
		return nil
	}
	r.ensureSorted()
	r.started = true
	for _, s := range r.systems {
		if s.Phase() == PhaseStartup {
			r.run(s, 0)
		}
	}
	return r.flush()
}

// Tick runs every non-startup system once, then flushes. The returned error
// aggregates the commands that failed to apply; the tick itself completed.
func (r *Runner) Tick(dt time.Duration) error {
	if !r.started {
		if err := r.Startup(); err != nil {
			return err
		}
	}
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() != PhaseStartup {
			r.run(s, dt)
		}
	}
	err := r.flush()
	r.bus.Compact()
	r.tick++
	return err
}

// TickPhase runs only the systems of one phase without flushing. Hosts use
// it to fold input between full ticks.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			r.run(s, dt)
		}
	}
}

func (r *Runner) run(s System, dt time.Duration) {
	name := nameOf(s)
	scope := r.resources.Begin(name)
	defer scope.End()
	s.Update(&Context{
		World:     r.world,
		Commands:  r.commands,
		Resources: scope,
		Events:    r.bus,
		Log:       r.log.With(zap.String("system", name)),
		Tick:      r.tick,
		DT:        dt,
	})
}

func (r *Runner) flush() error {
	n := r.commands.Len()
	if n == 0 {
		return nil
	}
	err := r.world.Apply(r.commands)
	if err != nil {
		r.log.Warn("command flush", zap.Uint64("tick", r.tick), zap.Int("commands", n), zap.Error(err))
	}
	return err
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
