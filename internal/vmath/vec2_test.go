package vmath_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/topdown/shooter/internal/vmath"
)

const eps = 1e-9

func TestNormalize(t *testing.T) {
	n := vmath.Vec2{X: 3, Y: 4}.Normalize()
	assert.InDelta(t, 0.6, n.X, eps)
	assert.InDelta(t, 0.8, n.Y, eps)
	assert.Equal(t, vmath.Vec2{}, vmath.Vec2{}.Normalize())
}

func TestAngleBetween(t *testing.T) {
	cases := []struct {
		name string
		to   vmath.Vec2
		want float64
	}{
		{"up", vmath.Vec2{X: 0, Y: 5}, 0},
		{"left", vmath.Vec2{X: -1, Y: 0}, math.Pi / 2},
		{"right", vmath.Vec2{X: 2, Y: 0}, -math.Pi / 2},
		{"zero", vmath.Vec2{}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, vmath.AngleBetween(vmath.Up, tc.to), eps)
		})
	}
	// straight down sits on the branch cut; either sign is a half turn
	assert.InDelta(t, math.Pi, math.Abs(vmath.AngleBetween(vmath.Up, vmath.Vec2{X: 0, Y: -1})), eps)
}

func TestHeadingMatchesAngleBetween(t *testing.T) {
	for _, d := range []vmath.Vec2{{X: 1, Y: 1}, {X: -3, Y: 2}, {X: 0.5, Y: -7}, {X: -1, Y: -1}} {
		h := vmath.Heading(vmath.AngleBetween(vmath.Up, d))
		n := d.Normalize()
		assert.InDelta(t, n.X, h.X, eps)
		assert.InDelta(t, n.Y, h.Y, eps)
	}
}

func TestNormalizeAngle(t *testing.T) {
	assert.InDelta(t, 0, vmath.NormalizeAngle(2*math.Pi), eps)
	assert.InDelta(t, math.Pi, vmath.NormalizeAngle(-math.Pi), eps)
	assert.InDelta(t, -math.Pi/2, vmath.NormalizeAngle(3*math.Pi/2), eps)
	assert.InDelta(t, 0.25, vmath.NormalizeAngle(0.25+4*math.Pi), eps)
}

func TestDistance(t *testing.T) {
	a, b := vmath.Vec2{X: 1, Y: 1}, vmath.Vec2{X: 4, Y: 5}
	assert.InDelta(t, 5, a.Distance(b), eps)
	assert.InDelta(t, 25, a.DistanceSquared(b), eps)
}
