package system

import (
	"github.com/topdown/shooter/internal/component"
	"github.com/topdown/shooter/internal/core/ecs"
	"github.com/topdown/shooter/internal/core/event"
	"github.com/topdown/shooter/internal/core/resource"
	coresys "github.com/topdown/shooter/internal/core/system"
	"github.com/topdown/shooter/internal/data"
	"github.com/topdown/shooter/internal/world"
)

// CollisionSystem resolves bullet/enemy hits and player/enemy contact with
// a fixed-radius circle test. Only active enemies take part.
type CollisionSystem struct {
	radius   float64
	bullets  *ecs.DisjointPair[component.Transform, component.Transform]
	player   *ecs.DisjointPair[component.Transform, component.Transform]
	consumed map[ecs.EntityID]struct{}
}

func NewCollisionSystem(w *ecs.World, t data.CollisionTuning) (*CollisionSystem, error) {
	enemies := func() *ecs.Query[component.Transform] {
		return ecs.NewQuery[component.Transform](w,
			ecs.With[component.Enemy](), ecs.Without[component.Bullet](), ecs.Without[component.PlayerShip]())
	}
	bullets, err := ecs.NewDisjointPair(
		ecs.NewQuery[component.Transform](w, ecs.With[component.Bullet](), ecs.Without[component.Enemy]()),
		enemies(),
	)
	if err != nil {
		return nil, err
	}
	player, err := ecs.NewDisjointPair(
		ecs.NewQuery[component.Transform](w, ecs.With[component.PlayerShip](), ecs.Without[component.Enemy]()),
		enemies(),
	)
	if err != nil {
		return nil, err
	}
	return &CollisionSystem{
		radius:   t.HitRadius,
		bullets:  bullets,
		player:   player,
		consumed: make(map[ecs.EntityID]struct{}),
	}, nil
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }
func (s *CollisionSystem) Name() string         { return "collision" }

func (s *CollisionSystem) Update(ctx *coresys.Context) {
	clear(s.consumed)
	kills := s.resolveBullets(ctx)
	contact := s.resolvePlayer(ctx)

	if kills == 0 && !contact {
		return
	}
	sess := resource.Mut[world.Session](ctx.Resources)
	sess.Kills += kills
	if contact {
		sess.Contacts++
		event.Send(ctx.Events, event.GameOver{})
	}
}

// resolveBullets despawns each bullet with the first unconsumed enemy in
// range. An enemy is hit by at most one bullet per tick.
func (s *CollisionSystem) resolveBullets(ctx *coresys.Context) int {
	kills := 0
	for bid, btf := range s.bullets.Left.Iter() {
		for eid, etf := range s.bullets.Right.Iter() {
			if _, gone := s.consumed[eid]; gone || !s.active(ctx.World, eid) {
				continue
			}
			if btf.Translation.Distance(etf.Translation) < s.radius {
				ctx.Commands.Despawn(bid)
				ctx.Commands.Despawn(eid)
				s.consumed[eid] = struct{}{}
				kills++
				break
			}
		}
	}
	return kills
}

// resolvePlayer reports whether any active enemy still standing touches
// the player.
func (s *CollisionSystem) resolvePlayer(ctx *coresys.Context) bool {
	_, ptf := s.player.Left.MustSingle()
	for eid, etf := range s.player.Right.Iter() {
		if _, gone := s.consumed[eid]; gone || !s.active(ctx.World, eid) {
			continue
		}
		if ptf.Translation.Distance(etf.Translation) < s.radius {
			return true
		}
	}
	return false
}

func (s *CollisionSystem) active(w *ecs.World, id ecs.EntityID) bool {
	e, ok := ecs.Get[component.Enemy](w, id)
	return ok && e.Active()
}
