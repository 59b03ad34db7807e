package game_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topdown/shooter/internal/component"
	"github.com/topdown/shooter/internal/config"
	"github.com/topdown/shooter/internal/data"
	"github.com/topdown/shooter/internal/game"
	"github.com/topdown/shooter/internal/input"
	"github.com/topdown/shooter/internal/scripting"
)

func options() game.Options {
	return game.Options{
		Window: config.Default().Window,
		Tick:   time.Second / 60,
		Tuning: data.DefaultTuning(),
		Seed:   7,
	}
}

func TestNewRejectsCrampedWindow(t *testing.T) {
	opts := options()
	opts.Window.Width, opts.Window.Height = 30, 30
	_, err := game.New(opts)
	assert.ErrorIs(t, err, game.ErrWindowTooSmall)
}

func TestNewRejectsBadTuning(t *testing.T) {
	opts := options()
	opts.Tuning.Collision.HitRadius = 0
	_, err := game.New(opts)
	assert.ErrorIs(t, err, data.ErrInvalidTuning)
}

func TestStartupPopulatesWorld(t *testing.T) {
	app, err := game.New(options())
	require.NoError(t, err)
	_, ok := app.Player()
	assert.False(t, ok)

	require.NoError(t, app.Startup())
	c := app.Counts()
	assert.Equal(t, 1, c.Players)
	assert.Equal(t, 2, c.Entities, "camera and ship")

	w := app.Window()
	assert.Equal(t, "Game Title", w.Title)
	assert.Equal(t, 480.0, w.Width)
}

func TestResize(t *testing.T) {
	app, err := game.New(options())
	require.NoError(t, err)
	require.NoError(t, app.Resize(800, 600))
	assert.Equal(t, 800.0, app.Window().Width)
	assert.Equal(t, 600.0, app.Window().Height)
}

func TestResizeRefusesWindowTooSmallToSpawn(t *testing.T) {
	opts := options()
	opts.Window.Resizable = true
	opts.Tuning.Enemy.FirstSpawnDelay = 0
	app, err := game.New(opts)
	require.NoError(t, err)
	require.NoError(t, app.Startup())

	assert.ErrorIs(t, app.Resize(20, 20), game.ErrWindowTooSmall)
	assert.Equal(t, 480.0, app.Window().Width)
	assert.Equal(t, 320.0, app.Window().Height)

	done := make(chan error, 1)
	go func() { done <- app.Tick() }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("tick did not return after a refused resize")
	}
	assert.Equal(t, 1, app.Session().Spawned)
}

func TestDrawablesHideAppearingEnemies(t *testing.T) {
	opts := options()
	opts.Tuning.Enemy.FirstSpawnDelay = 0
	app, err := game.New(opts)
	require.NoError(t, err)
	require.NoError(t, app.Tick())

	var kinds []component.Image
	hidden := 0
	app.Drawables(func(d game.Drawable) {
		kinds = append(kinds, d.Sprite.Image)
		if d.Hidden {
			hidden++
		}
	})
	assert.Equal(t, []component.Image{component.ImagePlayer, component.ImageEnemy}, kinds)
	assert.Equal(t, 1, hidden)
}

func TestSameSeedSameRun(t *testing.T) {
	run := func() []component.Transform {
		app, err := game.New(options())
		require.NoError(t, err)
		app.Input().PushCursor(400, 300)
		app.Input().PushButton(input.MouseLeft, input.Pressed)
		for i := 0; i < 400 && !app.Over(); i++ {
			require.NoError(t, app.Tick())
		}
		var out []component.Transform
		app.Drawables(func(d game.Drawable) { out = append(out, d.Transform) })
		return out
	}
	assert.Equal(t, run(), run())
}

func TestEnemiesEventuallyEndTheRun(t *testing.T) {
	app, err := game.New(options())
	require.NoError(t, err)
	for i := 0; i < 2000 && !app.Over(); i++ {
		require.NoError(t, app.Tick())
	}
	assert.True(t, app.Over(), "an idle player is caught")
	assert.Positive(t, app.Session().Spawned)
}

func TestScriptsAreOptional(t *testing.T) {
	eng, err := scripting.NewEngine(filepath.Join("..", "..", "scripts"), nil)
	require.NoError(t, err)
	defer eng.Close()

	opts := options()
	opts.Scripts = eng
	app, err := game.New(opts)
	require.NoError(t, err)
	for i := 0; i < 30; i++ {
		require.NoError(t, app.Tick())
	}
	assert.Equal(t, 1, app.Counts().Enemies)
}
