package terminal

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topdown/shooter/internal/component"
	"github.com/topdown/shooter/internal/config"
	"github.com/topdown/shooter/internal/core/ecs"
	"github.com/topdown/shooter/internal/data"
	"github.com/topdown/shooter/internal/game"
)

func setup(t *testing.T) (*Driver, *game.App, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	t.Cleanup(s.Fini)
	s.SetSize(80, 21)

	tuning := data.DefaultTuning()
	tuning.Enemy.FirstSpawnDelay = 1 << 30
	app, err := game.New(game.Options{
		Window: config.Default().Window,
		Tick:   time.Millisecond,
		Tuning: tuning,
	})
	require.NoError(t, err)
	require.NoError(t, app.Startup())
	return New(app, s, Options{Interval: time.Millisecond}, nil), app, s
}

func rowText(s tcell.SimulationScreen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestMouseSteersTheShip(t *testing.T) {
	d, app, _ := setup(t)
	require.True(t, d.Handle(tcell.NewEventMouse(40, 12, tcell.ButtonNone, tcell.ModNone)))
	require.NoError(t, app.Tick())

	_, ship, ok := ecs.NewQuery[component.PlayerShip](app.World()).Single()
	require.True(t, ok)
	// cell (40,12) of an 80x20 grid over 480x320 is centred at window (243, 120)
	assert.InDelta(t, 3.0, ship.TargetX, 1e-9)
	assert.InDelta(t, -40.0, ship.TargetY, 1e-9)
}

func TestMouseButtonEdges(t *testing.T) {
	d, app, _ := setup(t)
	d.Handle(tcell.NewEventMouse(10, 10, tcell.Button1, tcell.ModNone))
	d.Handle(tcell.NewEventMouse(11, 10, tcell.Button1, tcell.ModNone))
	require.Equal(t, 3, app.Input().Len(), "two cursor moves and one press")
	d.Handle(tcell.NewEventMouse(11, 10, tcell.ButtonNone, tcell.ModNone))
	require.Equal(t, 5, app.Input().Len())

	require.NoError(t, app.Tick())
	assert.Equal(t, 0, app.Session().Shots, "the trigger is level-triggered; a click inside one tick is not held")
}

func TestKeysAutoRelease(t *testing.T) {
	d, app, _ := setup(t)
	now := time.Unix(0, 0)
	d.now = func() time.Time { return now }

	d.Handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	d.Handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	assert.Equal(t, 1, app.Input().Len(), "auto-repeat is not a new press")

	d.releaseStaleKeys()
	assert.Equal(t, 1, app.Input().Len())

	now = now.Add(keyHold)
	d.releaseStaleKeys()
	assert.Equal(t, 2, app.Input().Len())
}

func TestQuitKeys(t *testing.T) {
	d, _, _ := setup(t)
	assert.False(t, d.Handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, d.Handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.True(t, d.Handle(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
}

func TestDrawPlacesShipAndStatus(t *testing.T) {
	d, app, s := setup(t)
	require.NoError(t, app.Tick())
	d.Draw()

	r, _, _, _ := s.GetContent(40, 10)
	assert.Equal(t, '↑', r)
	assert.True(t, strings.HasPrefix(rowText(s, 20), " tick 1  kills 0"))
}

func TestArrowFor(t *testing.T) {
	assert.Equal(t, '↑', arrowFor(0))
	assert.Equal(t, '←', arrowFor(1.5707963))
	assert.Equal(t, '→', arrowFor(-1.5707963))
	assert.Equal(t, '↓', arrowFor(3.14159))
	assert.Equal(t, '↓', arrowFor(-3.14159))
}

func TestRunStopsAtMaxTicks(t *testing.T) {
	d, app, _ := setup(t)
	d.opts.MaxTicks = 5
	require.NoError(t, d.Run(context.Background()))
	assert.Equal(t, uint64(5), app.Ticks())
}
