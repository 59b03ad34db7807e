package system_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topdown/shooter/internal/component"
	"github.com/topdown/shooter/internal/core/ecs"
	"github.com/topdown/shooter/internal/core/resource"
	"github.com/topdown/shooter/internal/data"
	"github.com/topdown/shooter/internal/input"
)

func TestStartupSpawnsCameraAndPlayer(t *testing.T) {
	h := newHarness(t, quiet(), nil)
	assert.Equal(t, 1, ecs.NewQuery[component.Camera](h.w()).Count())
	assert.Equal(t, 1, ecs.NewQuery[component.PlayerShip](h.w()).Count())
	_, tf := h.player()
	assert.Zero(t, tf.Translation.Length())
}

func TestCursorRetargetsAndPlayerWalks(t *testing.T) {
	h := newHarness(t, quiet(), nil)
	h.queue.PushCursor(300, 200)
	h.tick(1)

	id, tf := h.player()
	ship, _ := ecs.Get[component.PlayerShip](h.w(), id)
	assert.Equal(t, 60.0, ship.TargetX)
	assert.Equal(t, 40.0, ship.TargetY)
	assert.InDelta(t, 1.0, tf.Translation.Length(), 1e-9, "one unit per tick")
	assert.InDelta(t, math.Atan2(-60, 40), tf.Rotation, 1e-9)

	h.tick(100)
	_, tf = h.player()
	arrived := tf.Translation
	assert.Less(t, math.Hypot(60-arrived.X, 40-arrived.Y), 1.0)

	h.tick(10)
	_, tf = h.player()
	assert.Equal(t, arrived, tf.Translation, "no movement once inside the arrive threshold")
}

func TestOnlyLastCursorEventOfTickCounts(t *testing.T) {
	h := newHarness(t, quiet(), nil)
	h.queue.PushCursor(0, 0)
	h.queue.PushCursor(240, 0)
	h.tick(1)

	id, _ := h.player()
	ship, _ := ecs.Get[component.PlayerShip](h.w(), id)
	assert.Equal(t, 0.0, ship.TargetX)
	assert.Equal(t, -160.0, ship.TargetY)
}

func TestDistanceToTargetNeverGrows(t *testing.T) {
	tuning := quiet()
	tuning.Player = data.PlayerTuning{Speed: 1.5, ArriveThreshold: 1.0}
	h := newHarness(t, tuning, nil)
	h.queue.PushCursor(240+7.3, 160-2.1)

	var last float64 = math.Inf(1)
	for i := 0; i < 20; i++ {
		h.tick(1)
		_, tf := h.player()
		d := math.Hypot(7.3-tf.Translation.X, -2.1-tf.Translation.Y)
		require.LessOrEqual(t, d, last, "distance to target never grows")
		last = d
	}
	assert.Less(t, last, 1.0)
}

func TestMissingPlayerIsFatal(t *testing.T) {
	h := newHarness(t, quiet(), nil)
	id, _ := h.player()
	h.w().Despawn(id)
	h.queue.PushCursor(10, 10)
	assert.Panics(t, func() { h.tick(1) })
}

func TestButtonTablesFollowInput(t *testing.T) {
	h := newHarness(t, quiet(), nil)
	h.queue.PushKey(input.KeyW, input.Pressed)
	h.queue.PushButton(input.MouseRight, input.Pressed)
	h.tick(1)
	keys, _ := resource.Peek[input.Keys](h.runner.Resources())
	mouse, _ := resource.Peek[input.MouseButtons](h.runner.Resources())
	assert.True(t, keys.Pressed(input.KeyW))
	assert.True(t, keys.JustPressed(input.KeyW))
	assert.True(t, mouse.Pressed(input.MouseRight))

	h.queue.PushKey(input.KeyW, input.Released)
	h.tick(1)
	keys, _ = resource.Peek[input.Keys](h.runner.Resources())
	assert.False(t, keys.Pressed(input.KeyW))
	assert.True(t, keys.JustReleased(input.KeyW))
	assert.False(t, keys.JustPressed(input.KeyW))
	assert.Equal(t, 0, h.bullets(), "right button and W do not fire")
}
