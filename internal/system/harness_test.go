package system_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/topdown/shooter/internal/component"
	"github.com/topdown/shooter/internal/core/ecs"
	"github.com/topdown/shooter/internal/core/event"
	"github.com/topdown/shooter/internal/core/resource"
	coresys "github.com/topdown/shooter/internal/core/system"
	"github.com/topdown/shooter/internal/data"
	"github.com/topdown/shooter/internal/input"
	"github.com/topdown/shooter/internal/system"
	"github.com/topdown/shooter/internal/vmath"
	"github.com/topdown/shooter/internal/world"
)

const never = 1 << 30

type harness struct {
	t      *testing.T
	runner *coresys.Runner
	queue  *input.Queue
}

// quiet is the default tuning with enemy spawning switched off.
func quiet() data.Tuning {
	t := data.DefaultTuning()
	t.Enemy.FirstSpawnDelay = never
	return t
}

func newHarness(t *testing.T, tuning data.Tuning, pacer system.Pacer) *harness {
	t.Helper()
	r := coresys.NewRunner(ecs.NewWorld(), resource.NewStore(), event.NewBus(), nil)
	require.NoError(t, resource.Insert(r.Resources(), world.Window{Title: "test", Width: 480, Height: 320}))
	require.NoError(t, resource.Insert(r.Resources(), world.NewRandom(42)))
	q := input.NewQueue(64)
	for _, p := range system.Plugins(tuning, q, 0, pacer, nil) {
		require.NoError(t, r.AddPlugin(p))
	}
	require.NoError(t, r.Startup())
	return &harness{t: t, runner: r, queue: q}
}

func (h *harness) tick(n int) {
	h.t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(h.t, h.runner.Tick(0))
	}
}

func (h *harness) w() *ecs.World { return h.runner.World() }

func (h *harness) player() (ecs.EntityID, *component.Transform) {
	return ecs.NewQuery[component.Transform](h.w(), ecs.With[component.PlayerShip]()).MustSingle()
}

func (h *harness) movePlayer(x, y float64) {
	id, tf := h.player()
	tf.Translation = vmath.Vec2{X: x, Y: y}
	ship, _ := ecs.Get[component.PlayerShip](h.w(), id)
	ship.TargetX, ship.TargetY = x, y
}

func (h *harness) addBullet(x, y, rot float64) ecs.EntityID {
	id := h.w().Spawn()
	require.NoError(h.t, ecs.Set(h.w(), id, component.Transform{Translation: vmath.Vec2{X: x, Y: y}, Rotation: rot}))
	require.NoError(h.t, ecs.Set(h.w(), id, component.Bullet{}))
	return id
}

func (h *harness) addEnemy(x, y float64, appear int) ecs.EntityID {
	id := h.w().Spawn()
	require.NoError(h.t, ecs.Set(h.w(), id, component.At(x, y)))
	require.NoError(h.t, ecs.Set(h.w(), id, component.Enemy{FramesToAppear: appear}))
	return id
}

func (h *harness) bullets() int {
	return ecs.NewQuery[component.Bullet](h.w()).Count()
}

func (h *harness) enemies() int {
	return ecs.NewQuery[component.Enemy](h.w()).Count()
}

func (h *harness) session() world.Session {
	s, _ := resource.Peek[world.Session](h.runner.Resources())
	return s
}
