package data

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// PlayerTuning drives the player controller.
type PlayerTuning struct {
	Speed           float64 `yaml:"speed"`            // units per tick
	ArriveThreshold float64 `yaml:"arrive_threshold"` // stop once closer than this
}

// GunTuning drives the gun and its bullets.
type GunTuning struct {
	Cooldown    int     `yaml:"cooldown"`     // ticks re-armed after the gun is ready
	BulletSpeed float64 `yaml:"bullet_speed"` // units per tick
}

// EnemyTuning drives the spawner and mover.
type EnemyTuning struct {
	Speed            float64 `yaml:"speed"`
	FirstSpawnDelay  int     `yaml:"first_spawn_delay"`
	SpawnInterval    int     `yaml:"spawn_interval"`
	FramesToAppear   int     `yaml:"frames_to_appear"`
	MinSpawnDistSq   float64 `yaml:"min_spawn_dist_sq"`
	MaxSpawnAttempts int     `yaml:"max_spawn_attempts"` // 0 = unbounded
}

// CollisionTuning is shared by both collision passes.
type CollisionTuning struct {
	HitRadius float64 `yaml:"hit_radius"`
}

// Tuning is every gameplay constant in one table.
type Tuning struct {
	Player    PlayerTuning    `yaml:"player"`
	Gun       GunTuning       `yaml:"gun"`
	Enemy     EnemyTuning     `yaml:"enemy"`
	Collision CollisionTuning `yaml:"collision"`
}

var ErrInvalidTuning = errors.New("invalid tuning")

// DefaultTuning matches the shipped behaviour of the earliest snapshot
// that has every system.
func DefaultTuning() Tuning {
	return Tuning{
		Player: PlayerTuning{Speed: 1.0, ArriveThreshold: 1.0},
		Gun:    GunTuning{Cooldown: 5, BulletSpeed: 10},
		Enemy: EnemyTuning{
			Speed:           0.5,
			FirstSpawnDelay: 20,
			SpawnInterval:   90,
			FramesToAppear:  10,
			MinSpawnDistSq:  400,
		},
		Collision: CollisionTuning{HitRadius: 20},
	}
}

// LoadTuning reads tuning.yaml over the defaults. An empty path returns the
// defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning: %w", err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// Validate reports every out-of-range field at once.
func (t Tuning) Validate() error {
	var errs error
	check := func(ok bool, field string, v any) {
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("%s=%v: %w", field, v, ErrInvalidTuning))
		}
	}
	check(t.Player.Speed > 0, "player.speed", t.Player.Speed)
	check(t.Player.ArriveThreshold > 0, "player.arrive_threshold", t.Player.ArriveThreshold)
	check(t.Gun.Cooldown >= 0, "gun.cooldown", t.Gun.Cooldown)
	check(t.Gun.BulletSpeed > 0, "gun.bullet_speed", t.Gun.BulletSpeed)
	check(t.Enemy.Speed >= 0, "enemy.speed", t.Enemy.Speed)
	check(t.Enemy.FirstSpawnDelay >= 0, "enemy.first_spawn_delay", t.Enemy.FirstSpawnDelay)
	check(t.Enemy.SpawnInterval > 0, "enemy.spawn_interval", t.Enemy.SpawnInterval)
	check(t.Enemy.FramesToAppear >= 0, "enemy.frames_to_appear", t.Enemy.FramesToAppear)
	check(t.Enemy.MinSpawnDistSq >= 0, "enemy.min_spawn_dist_sq", t.Enemy.MinSpawnDistSq)
	check(t.Enemy.MaxSpawnAttempts >= 0, "enemy.max_spawn_attempts", t.Enemy.MaxSpawnAttempts)
	check(t.Collision.HitRadius > 0, "collision.hit_radius", t.Collision.HitRadius)
	return errs
}
