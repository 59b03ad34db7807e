package system

import (
	"github.com/topdown/shooter/internal/core/resource"
	coresys "github.com/topdown/shooter/internal/core/system"
	"github.com/topdown/shooter/internal/data"
	"github.com/topdown/shooter/internal/input"
	"github.com/topdown/shooter/internal/world"
)

// InputPlugin owns the button tables and the system that feeds them.
type InputPlugin struct {
	Queue      *input.Queue
	MaxPerTick int
}

func (InputPlugin) Name() string { return "input" }

func (p InputPlugin) Build(r *coresys.Runner) error {
	resource.InsertDefault[input.MouseButtons](r.Resources())
	resource.InsertDefault[input.Keys](r.Resources())
	r.Register(NewInputSystem(p.Queue, p.MaxPerTick))
	return nil
}

// PlayerPlugin spawns the ship and steers it toward the cursor.
type PlayerPlugin struct {
	Tuning data.PlayerTuning
}

func (PlayerPlugin) Name() string { return "player" }

func (p PlayerPlugin) Build(r *coresys.Runner) error {
	r.Register(SpawnPlayerSystem{})
	r.Register(NewPlayerTargetSystem(r.Events()))
	r.Register(NewPlayerMoveSystem(p.Tuning))
	return nil
}

// GunPlugin owns GunState and the bullets it produces.
type GunPlugin struct {
	Tuning data.GunTuning
}

func (GunPlugin) Name() string { return "gun" }

func (p GunPlugin) Build(r *coresys.Runner) error {
	if err := resource.Insert(r.Resources(), world.GunState{}); err != nil {
		return err
	}
	resource.InsertDefault[world.Session](r.Resources())
	r.Register(NewFireSystem(p.Tuning))
	r.Register(NewBulletMoveSystem(p.Tuning))
	return nil
}

// EnemyPlugin owns EnemyState and the enemies. Random must be inserted by
// the host when a fixed seed is wanted; otherwise seed 1 is used.
type EnemyPlugin struct {
	Tuning data.EnemyTuning
	Pacer  Pacer
}

func (EnemyPlugin) Name() string { return "enemy" }

func (p EnemyPlugin) Build(r *coresys.Runner) error {
	if err := resource.Insert(r.Resources(), world.EnemyState{
		FramesToNextEnemy: p.Tuning.FirstSpawnDelay,
		SpawnInterval:     p.Tuning.SpawnInterval,
	}); err != nil {
		return err
	}
	if !resource.Has[world.Random](r.Resources()) {
		resource.Set(r.Resources(), world.NewRandom(1))
	}
	resource.InsertDefault[world.Session](r.Resources())
	r.Register(NewEnemySpawnSystem(p.Tuning, p.Pacer))
	r.Register(NewEnemyMoveSystem(p.Tuning))
	return nil
}

// CollisionPlugin resolves hits and watches for game over.
type CollisionPlugin struct {
	Tuning   data.CollisionTuning
	Epilogue Epilogue
}

func (CollisionPlugin) Name() string { return "collision" }

func (p CollisionPlugin) Build(r *coresys.Runner) error {
	sys, err := NewCollisionSystem(r.World(), p.Tuning)
	if err != nil {
		return err
	}
	resource.InsertDefault[world.Session](r.Resources())
	r.Register(sys)
	r.Register(NewGameOverSystem(r.Events(), p.Epilogue))
	return nil
}

// Plugins returns the gameplay plugins in tick order: player, gun, enemy,
// collision.
func Plugins(t data.Tuning, queue *input.Queue, maxInput int, pacer Pacer, epilogue Epilogue) []coresys.Plugin {
	return []coresys.Plugin{
		InputPlugin{Queue: queue, MaxPerTick: maxInput},
		PlayerPlugin{Tuning: t.Player},
		GunPlugin{Tuning: t.Gun},
		EnemyPlugin{Tuning: t.Enemy, Pacer: pacer},
		CollisionPlugin{Tuning: t.Collision, Epilogue: epilogue},
	}
}
