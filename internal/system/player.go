package system

import (
	"github.com/topdown/shooter/internal/component"
	"github.com/topdown/shooter/internal/core/ecs"
	"github.com/topdown/shooter/internal/core/event"
	"github.com/topdown/shooter/internal/core/resource"
	coresys "github.com/topdown/shooter/internal/core/system"
	"github.com/topdown/shooter/internal/data"
	"github.com/topdown/shooter/internal/input"
	"github.com/topdown/shooter/internal/vmath"
	"github.com/topdown/shooter/internal/world"
)

// SpawnPlayerSystem places the camera and the ship at the origin. Startup.
type SpawnPlayerSystem struct{}

func (SpawnPlayerSystem) Phase() coresys.Phase { return coresys.PhaseStartup }
func (SpawnPlayerSystem) Name() string         { return "spawn_player" }

func (SpawnPlayerSystem) Update(ctx *coresys.Context) {
	cam := ctx.Commands.Spawn()
	ecs.Insert(ctx.Commands, cam, component.Camera{})
	ecs.Insert(ctx.Commands, cam, component.At(0, 0))

	ship := ctx.Commands.Spawn()
	ecs.Insert(ctx.Commands, ship, component.At(0, 0))
	ecs.Insert(ctx.Commands, ship, component.PlayerShip{})
	ecs.Insert(ctx.Commands, ship, component.PlayerSprite)
}

// PlayerTargetSystem retargets the ship to the latest cursor position of the
// tick. Earlier moves in the same tick are discarded.
type PlayerTargetSystem struct {
	cursor *event.Reader[input.CursorMoved]
}

func NewPlayerTargetSystem(bus *event.Bus) *PlayerTargetSystem {
	return &PlayerTargetSystem{cursor: event.NewReader[input.CursorMoved](bus)}
}

func (s *PlayerTargetSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }
func (s *PlayerTargetSystem) Name() string         { return "player_target" }

func (s *PlayerTargetSystem) Update(ctx *coresys.Context) {
	last, ok := s.cursor.Last()
	if !ok {
		return
	}
	win := resource.Get[world.Window](ctx.Resources)
	target := win.ToWorld(last.Position)
	_, ship := ecs.NewQuery[component.PlayerShip](ctx.World).MustSingle()
	ship.TargetX, ship.TargetY = target.X, target.Y
}

// PlayerMoveSystem steps the ship toward its target and turns it to face
// the direction of travel. Within the arrive threshold it holds still.
type PlayerMoveSystem struct {
	speed     float64
	threshold float64
}

func NewPlayerMoveSystem(t data.PlayerTuning) *PlayerMoveSystem {
	return &PlayerMoveSystem{speed: t.Speed, threshold: t.ArriveThreshold}
}

func (s *PlayerMoveSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }
func (s *PlayerMoveSystem) Name() string         { return "player_move" }

func (s *PlayerMoveSystem) Update(ctx *coresys.Context) {
	ecs.NewQuery2[component.Transform, component.PlayerShip](ctx.World).Each(
		func(_ ecs.EntityID, tf *component.Transform, ship *component.PlayerShip) {
			toTarget := vmath.Vec2{X: ship.TargetX, Y: ship.TargetY}.Sub(tf.Translation)
			if toTarget.Length() < s.threshold {
				return
			}
			dir := toTarget.Normalize()
			tf.Translation = tf.Translation.Add(dir.Scale(s.speed))
			tf.Rotation = vmath.AngleBetween(vmath.Up, dir)
		})
}
