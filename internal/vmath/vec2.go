// Package vmath is the small slice of 2D vector math the simulation needs.
package vmath

import "math"

// Vec2 is a point or direction in world units. +Y is up.
type Vec2 struct {
	X, Y float64
}

// Up is the local forward axis of every sprite.
var Up = Vec2{0, 1}

func (v Vec2) Add(o Vec2) Vec2        { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2        { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2   { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Dot(o Vec2) float64     { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Cross(o Vec2) float64   { return v.X*o.Y - v.Y*o.X }
func (v Vec2) LengthSquared() float64 { return v.Dot(v) }
func (v Vec2) Length() float64        { return math.Hypot(v.X, v.Y) }

// Normalize returns v scaled to length 1. The zero vector stays zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

func (v Vec2) Distance(o Vec2) float64        { return v.Sub(o).Length() }
func (v Vec2) DistanceSquared(o Vec2) float64 { return v.Sub(o).LengthSquared() }

// AngleBetween is the signed counter-clockwise angle that rotates a onto b,
// in (-π, π]. Zero vectors yield 0.
func AngleBetween(a, b Vec2) float64 {
	if a.LengthSquared() == 0 || b.LengthSquared() == 0 {
		return 0
	}
	return math.Atan2(a.Cross(b), a.Dot(b))
}

// Rotate turns v counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Heading returns the direction Up points after a rotation of angle.
func Heading(angle float64) Vec2 {
	return Up.Rotate(angle)
}

// NormalizeAngle wraps a into (-π, π].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	switch {
	case a <= -math.Pi:
		a += 2 * math.Pi
	case a > math.Pi:
		a -= 2 * math.Pi
	}
	return a
}
