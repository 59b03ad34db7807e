package component

import "github.com/topdown/shooter/internal/vmath"

// Transform places every visible entity. Rotation is the counter-clockwise
// angle in radians from the +Y axis.
type Transform struct {
	Translation vmath.Vec2
	Rotation    float64
}

// At builds an unrotated Transform.
func At(x, y float64) Transform {
	return Transform{Translation: vmath.Vec2{X: x, Y: y}}
}

// Heading is the unit vector the entity's up axis points along.
func (t Transform) Heading() vmath.Vec2 {
	return vmath.Heading(t.Rotation)
}
