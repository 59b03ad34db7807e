package system

import (
	"github.com/topdown/shooter/internal/component"
	"github.com/topdown/shooter/internal/core/ecs"
	"github.com/topdown/shooter/internal/core/resource"
	coresys "github.com/topdown/shooter/internal/core/system"
	"github.com/topdown/shooter/internal/data"
	"github.com/topdown/shooter/internal/input"
	"github.com/topdown/shooter/internal/world"
)

// FireSystem runs the gun cooldown. When the counter is zero the gun fires
// if the trigger is held, and the counter re-arms to the cooldown on that
// tick whether or not a shot went out. Otherwise it counts down by one.
type FireSystem struct {
	cooldown int
}

func NewFireSystem(t data.GunTuning) *FireSystem {
	return &FireSystem{cooldown: t.Cooldown}
}

func (s *FireSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }
func (s *FireSystem) Name() string         { return "fire" }

func (s *FireSystem) Update(ctx *coresys.Context) {
	gun := resource.Mut[world.GunState](ctx.Resources)
	if gun.FramesToFire > 0 {
		gun.FramesToFire--
		return
	}
	if triggerHeld(ctx) {
		_, tf := ecs.NewQuery[component.Transform](ctx.World, ecs.With[component.PlayerShip](), ecs.ReadOnly()).MustSingle()
		b := ctx.Commands.Spawn()
		ecs.Insert(ctx.Commands, b, *tf)
		ecs.Insert(ctx.Commands, b, component.Bullet{})
		ecs.Insert(ctx.Commands, b, component.BulletSprite)
		resource.Mut[world.Session](ctx.Resources).Shots++
	}
	gun.FramesToFire = s.cooldown
}

// triggerHeld is level-triggered: holding the button keeps firing.
func triggerHeld(ctx *coresys.Context) bool {
	mouse := resource.Get[input.MouseButtons](ctx.Resources)
	if mouse.Pressed(input.MouseLeft) {
		return true
	}
	keys := resource.Get[input.Keys](ctx.Resources)
	return keys.Pressed(input.KeySpace)
}

// BulletMoveSystem advances bullets along their heading and despawns those
// that leave the window.
type BulletMoveSystem struct {
	speed float64
}

func NewBulletMoveSystem(t data.GunTuning) *BulletMoveSystem {
	return &BulletMoveSystem{speed: t.BulletSpeed}
}

func (s *BulletMoveSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }
func (s *BulletMoveSystem) Name() string         { return "bullet_move" }

func (s *BulletMoveSystem) Update(ctx *coresys.Context) {
	win := resource.Get[world.Window](ctx.Resources)
	bullets := ecs.NewQuery[component.Transform](ctx.World, ecs.With[component.Bullet]())
	for id, tf := range bullets.Iter() {
		tf.Translation = tf.Translation.Add(tf.Heading().Scale(s.speed))
		if !win.Contains(tf.Translation) {
			ctx.Commands.Despawn(id)
		}
	}
}
