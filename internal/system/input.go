package system

import (
	"go.uber.org/zap"

	"github.com/topdown/shooter/internal/core/event"
	"github.com/topdown/shooter/internal/core/resource"
	coresys "github.com/topdown/shooter/internal/core/system"
	"github.com/topdown/shooter/internal/input"
)

// InputSystem drains the driver's input queue and republishes it as events
// and button tables. Phase Input.
type InputSystem struct {
	queue      *input.Queue
	maxPerTick int
	dropped    uint64
}

func NewInputSystem(queue *input.Queue, maxPerTick int) *InputSystem {
	return &InputSystem{queue: queue, maxPerTick: maxPerTick}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }
func (s *InputSystem) Name() string         { return "input" }

func (s *InputSystem) Update(ctx *coresys.Context) {
	mouse := resource.Mut[input.MouseButtons](ctx.Resources)
	keys := resource.Mut[input.Keys](ctx.Resources)
	mouse.ClearJust()
	keys.ClearJust()

	s.queue.Drain(s.maxPerTick, func(smp input.Sample) {
		switch {
		case smp.Cursor != nil:
			event.Send(ctx.Events, *smp.Cursor)
		case smp.Mouse != nil:
			mouse.Apply(smp.Mouse.Button, smp.Mouse.State)
			event.Send(ctx.Events, *smp.Mouse)
		case smp.Key != nil:
			keys.Apply(smp.Key.Key, smp.Key.State)
			event.Send(ctx.Events, *smp.Key)
		}
	})

	if d := s.queue.Dropped(); d != s.dropped {
		ctx.Log.Warn("input queue overflow", zap.Uint64("dropped", d-s.dropped))
		s.dropped = d
	}
}
