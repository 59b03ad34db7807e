package component

// PlayerShip holds the world-space point the ship steers toward.
// At most one live entity carries it.
type PlayerShip struct {
	TargetX float64
	TargetY float64
}

// Bullet tags a projectile. Its heading is its Transform rotation.
type Bullet struct{}

// Enemy counts down FramesToAppear; while positive the enemy neither moves
// nor collides.
type Enemy struct {
	FramesToAppear int
}

// Active reports whether the grace period is over.
func (e Enemy) Active() bool { return e.FramesToAppear <= 0 }
