package world

import (
	"math"
	"math/rand/v2"

	"github.com/topdown/shooter/internal/vmath"
)

// Window mirrors the host window. The simulation only reads it; drivers
// overwrite it between ticks when the window is resized.
type Window struct {
	Title     string
	Width     float64
	Height    float64
	Resizable bool
}

// HalfExtent is the distance from the centre to the right and top edges.
func (w Window) HalfExtent() vmath.Vec2 {
	return vmath.Vec2{X: w.Width / 2, Y: w.Height / 2}
}

// Contains reports whether p lies inside the window in centred world space.
// Points on the border are inside.
func (w Window) Contains(p vmath.Vec2) bool {
	h := w.HalfExtent()
	return math.Abs(p.X) <= h.X && math.Abs(p.Y) <= h.Y
}

// ToWorld converts a window-space position (origin bottom-left) to world
// space (origin at the centre).
func (w Window) ToWorld(p vmath.Vec2) vmath.Vec2 {
	return p.Sub(w.HalfExtent())
}

// GunState is the single gun's cooldown. Zero means ready.
type GunState struct {
	FramesToFire int
}

// EnemyState paces enemy spawns.
type EnemyState struct {
	FramesToNextEnemy int
	SpawnInterval     int
}

// Random is the simulation's only source of randomness. Seeding it makes a
// run reproducible. The generator state is held by value, so drawing needs
// resource.Mut; a copy from resource.Get advances only itself.
type Random struct {
	pcg rand.PCG
}

func NewRandom(seed int64) Random {
	return Random{pcg: *rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15)}
}

// Float64 returns a number in [0, 1).
func (r *Random) Float64() float64 {
	return float64(r.pcg.Uint64()<<11>>11) / (1 << 53)
}

// Session accumulates what happened during a run.
type Session struct {
	Over     bool
	OverTick uint64
	Kills    int
	Shots    int
	Spawned  int
	Contacts int
}
