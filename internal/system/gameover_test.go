package system_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/topdown/shooter/internal/core/ecs"
	"github.com/topdown/shooter/internal/core/event"
	"github.com/topdown/shooter/internal/core/resource"
	coresys "github.com/topdown/shooter/internal/core/system"
	"github.com/topdown/shooter/internal/scripting"
	"github.com/topdown/shooter/internal/system"
	"github.com/topdown/shooter/internal/world"
)

type epilogueFunc func(scripting.RunSummary) string

func (f epilogueFunc) GameOverMessage(s scripting.RunSummary) string { return f(s) }

func TestGameOverLoggedOnce(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := coresys.NewRunner(ecs.NewWorld(), resource.NewStore(), event.NewBus(), zap.New(core))
	require.NoError(t, resource.Insert(r.Resources(), world.Session{Kills: 4, Shots: 9}))

	var got scripting.RunSummary
	r.Register(coresys.Func(coresys.PhaseUpdate, "hit", func(ctx *coresys.Context) {
		if ctx.Tick >= 2 {
			event.Send(ctx.Events, event.GameOver{})
		}
	}))
	r.Register(system.NewGameOverSystem(r.Events(), epilogueFunc(func(s scripting.RunSummary) string {
		got = s
		return "bye"
	})))

	for i := 0; i < 5; i++ {
		require.NoError(t, r.Tick(0))
	}

	s, _ := resource.Peek[world.Session](r.Resources())
	assert.True(t, s.Over)
	assert.Equal(t, uint64(2), s.OverTick)
	assert.Equal(t, scripting.RunSummary{Tick: 2, Kills: 4, Shots: 9}, got)

	entries := logs.FilterMessage("game over").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "bye", entries[0].ContextMap()["summary"])
	assert.Equal(t, "game_over", entries[0].ContextMap()["system"])
}
