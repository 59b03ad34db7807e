package system

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/topdown/shooter/internal/core/ecs"
	"github.com/topdown/shooter/internal/core/event"
	"github.com/topdown/shooter/internal/core/resource"
)

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseStartup    Phase = iota // runs once before the first tick
	PhaseInput                   // 1: fold driver input into events and input tables
	PhasePreUpdate               // 2: reserved for systems that must see input before gameplay
	PhaseUpdate                  // 3: gameplay, in registration order
	PhasePostUpdate              // 4: react to gameplay events
)

func (p Phase) String() string {
	switch p {
	case PhaseStartup:
		return "startup"
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post-update"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(ctx *Context)
}

// Named systems report a stable name for logs and borrow diagnostics.
type Named interface {
	Name() string
}

// Context is what a system sees during one run. Resources is a borrow scope
// released by the runner when Update returns.
type Context struct {
	World     *ecs.World
	Commands  *ecs.Commands
	Resources *resource.Scope
	Events    *event.Bus
	Log       *zap.Logger
	Tick      uint64
	DT        time.Duration
}

// Func adapts a plain function into a System.
func Func(phase Phase, name string, fn func(*Context)) System {
	return funcSystem{phase: phase, name: name, fn: fn}
}

type funcSystem struct {
	phase Phase
	name  string
	fn    func(*Context)
}

func (s funcSystem) Phase() Phase        { return s.phase }
func (s funcSystem) Name() string        { return s.name }
func (s funcSystem) Update(ctx *Context) { s.fn(ctx) }

// Plugin bundles the systems and resources of one gameplay module.
type Plugin interface {
	Name() string
	Build(r *Runner) error
}

func nameOf(s System) string {
	if n, ok := s.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}
