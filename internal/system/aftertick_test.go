package system_test

import coresys "github.com/topdown/shooter/internal/core/system"

// afterTick runs fn in PostUpdate, after every gameplay system.
func afterTick(fn func()) coresys.System {
	return coresys.Func(coresys.PhasePostUpdate, "after_tick", func(*coresys.Context) { fn() })
}
