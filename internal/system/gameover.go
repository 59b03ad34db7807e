package system

import (
	"go.uber.org/zap"

	"github.com/topdown/shooter/internal/core/event"
	"github.com/topdown/shooter/internal/core/resource"
	coresys "github.com/topdown/shooter/internal/core/system"
	"github.com/topdown/shooter/internal/scripting"
	"github.com/topdown/shooter/internal/world"
)

// Epilogue turns a finished run into a line for the log.
type Epilogue interface {
	GameOverMessage(s scripting.RunSummary) string
}

// GameOverSystem records the first GameOver of the run in Session.
// Phase PostUpdate.
type GameOverSystem struct {
	events   *event.Reader[event.GameOver]
	epilogue Epilogue
}

// NewGameOverSystem builds the watcher. epilogue may be nil.
func NewGameOverSystem(bus *event.Bus, epilogue Epilogue) *GameOverSystem {
	return &GameOverSystem{events: event.NewReader[event.GameOver](bus), epilogue: epilogue}
}

func (s *GameOverSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }
func (s *GameOverSystem) Name() string         { return "game_over" }

func (s *GameOverSystem) Update(ctx *coresys.Context) {
	if len(s.events.Read()) == 0 {
		return
	}
	sess := resource.Mut[world.Session](ctx.Resources)
	if sess.Over {
		return
	}
	sess.Over = true
	sess.OverTick = ctx.Tick

	fields := []zap.Field{
		zap.Uint64("tick", ctx.Tick),
		zap.Int("kills", sess.Kills),
		zap.Int("shots", sess.Shots),
		zap.Int("spawned", sess.Spawned),
	}
	if s.epilogue != nil {
		msg := s.epilogue.GameOverMessage(scripting.RunSummary{
			Tick: ctx.Tick, Kills: sess.Kills, Shots: sess.Shots, Spawned: sess.Spawned,
		})
		if msg != "" {
			fields = append(fields, zap.String("summary", msg))
		}
	}
	ctx.Log.Info("game over", fields...)
}
