package system

import (
	"go.uber.org/zap"

	"github.com/topdown/shooter/internal/component"
	"github.com/topdown/shooter/internal/core/ecs"
	"github.com/topdown/shooter/internal/core/resource"
	coresys "github.com/topdown/shooter/internal/core/system"
	"github.com/topdown/shooter/internal/data"
	"github.com/topdown/shooter/internal/scripting"
	"github.com/topdown/shooter/internal/vmath"
	"github.com/topdown/shooter/internal/world"
)

// Pacer lets a script stretch or shrink the spawn interval.
type Pacer interface {
	NextSpawnInterval(ctx scripting.PacingContext) (int, bool)
}

// EnemySpawnSystem counts down to the next enemy, then places it uniformly
// over the window, resampling until it is far enough from the player.
type EnemySpawnSystem struct {
	tuning data.EnemyTuning
	pacer  Pacer
}

// NewEnemySpawnSystem builds the spawner. pacer may be nil.
func NewEnemySpawnSystem(t data.EnemyTuning, pacer Pacer) *EnemySpawnSystem {
	return &EnemySpawnSystem{tuning: t, pacer: pacer}
}

func (s *EnemySpawnSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }
func (s *EnemySpawnSystem) Name() string         { return "enemy_spawn" }

func (s *EnemySpawnSystem) Update(ctx *coresys.Context) {
	state := resource.Mut[world.EnemyState](ctx.Resources)
	if state.FramesToNextEnemy > 0 {
		state.FramesToNextEnemy--
		return
	}

	win := resource.Get[world.Window](ctx.Resources)
	rng := resource.Mut[world.Random](ctx.Resources)
	_, player := ecs.NewQuery[component.Transform](ctx.World, ecs.With[component.PlayerShip](), ecs.ReadOnly()).MustSingle()

	pos, ok := s.place(win, rng, player.Translation)
	if ok {
		e := ctx.Commands.Spawn()
		ecs.Insert(ctx.Commands, e, component.Transform{Translation: pos})
		ecs.Insert(ctx.Commands, e, component.Enemy{FramesToAppear: s.tuning.FramesToAppear})
		ecs.Insert(ctx.Commands, e, component.EnemySprite)
	} else {
		ctx.Log.Warn("enemy placement gave up", zap.Int("attempts", s.tuning.MaxSpawnAttempts))
	}

	sess := resource.Mut[world.Session](ctx.Resources)
	if ok {
		sess.Spawned++
	}
	state.FramesToNextEnemy = s.interval(ctx, state.SpawnInterval, sess.Kills)
}

// place rejection-samples a spawn point. The window is validated at startup
// to leave room outside the exclusion disc, so the unbounded loop ends.
func (s *EnemySpawnSystem) place(win world.Window, rng *world.Random, player vmath.Vec2) (vmath.Vec2, bool) {
	for attempt := 0; s.tuning.MaxSpawnAttempts == 0 || attempt < s.tuning.MaxSpawnAttempts; attempt++ {
		p := vmath.Vec2{
			X: rng.Float64()*win.Width - win.Width/2,
			Y: rng.Float64()*win.Height - win.Height/2,
		}
		if p.DistanceSquared(player) >= s.tuning.MinSpawnDistSq {
			return p, true
		}
	}
	return vmath.Vec2{}, false
}

func (s *EnemySpawnSystem) interval(ctx *coresys.Context, base, kills int) int {
	if s.pacer == nil {
		return base
	}
	n, ok := s.pacer.NextSpawnInterval(scripting.PacingContext{
		Tick:         ctx.Tick,
		BaseInterval: base,
		Enemies:      ecs.NewQuery[component.Enemy](ctx.World, ecs.ReadOnly()).Count(),
		Kills:        kills,
	})
	if !ok {
		return base
	}
	return n
}

// EnemyMoveSystem ticks down each enemy's grace period and, once it is
// over, homes the enemy toward the player.
type EnemyMoveSystem struct {
	speed float64
}

func NewEnemyMoveSystem(t data.EnemyTuning) *EnemyMoveSystem {
	return &EnemyMoveSystem{speed: t.Speed}
}

func (s *EnemyMoveSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }
func (s *EnemyMoveSystem) Name() string         { return "enemy_move" }

func (s *EnemyMoveSystem) Update(ctx *coresys.Context) {
	_, player := ecs.NewQuery[component.Transform](ctx.World, ecs.With[component.PlayerShip](), ecs.ReadOnly()).MustSingle()
	target := player.Translation

	ecs.NewQuery2[component.Transform, component.Enemy](ctx.World).Each(
		func(_ ecs.EntityID, tf *component.Transform, e *component.Enemy) {
			if !e.Active() {
				e.FramesToAppear--
				return
			}
			dir := target.Sub(tf.Translation).Normalize()
			tf.Translation = tf.Translation.Add(dir.Scale(s.speed))
		})
}
