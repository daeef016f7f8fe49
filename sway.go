package sway

import "math"

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D vector. Used for spatial positions and as the translational
// part of a Transform.
type Vec3 struct {
	X, Y, Z float64
}

// Color represents an RGB color with components in [0, 1]. Alpha is a
// separate scalar property on scene objects, so colors carry three channels.
type Color struct {
	R, G, B float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1}

// Dim is a paired dimension: a fractional scale plus an absolute pixel
// offset. Used for resolution-independent layout values.
type Dim struct {
	Scale, Offset float64
}

// Dim2 pairs two Dim values, one per axis.
type Dim2 struct {
	X, Y Dim
}

func (v Vec2) add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec3) add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) magnitude() float64   { return math.Sqrt(v.dot(v)) }

func lerpFloat(a, b, t float64) float64 { return a + (b-a)*t }
