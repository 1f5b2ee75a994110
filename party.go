package party

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector is a 3D vector used for locations, velocities and euler rotations
// (in degrees). The coordinate system has its origin at the top-left, with Y
// increasing downward and Z pointing out of the screen.
type Vector = mgl64.Vec3

// Up is the direction gravity pulls particles in. Y grows downward, so "up"
// in the simulation is down on screen.
var Up = Vector{0, 1, 0}

// Forward points out of the screen, towards the viewer.
var Forward = Vector{0, 0, 1}

// VectorFrom2DAngle returns the unit vector in the XY plane for the given
// angle in degrees. 0° points right, 90° points down.
func VectorFrom2DAngle(degrees float64) Vector {
	sin, cos := math.Sincos(mgl64.DegToRad(degrees))
	return Vector{cos, sin, 0}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Circle is a circle given by its center and radius.
type Circle struct {
	X, Y, Radius float64
}

// Range is a general-purpose min/max range. It is a Variation that resolves
// to a uniformly distributed value in [Min, Max].
type Range struct {
	Min, Max float64
}

// Resolve returns a random float64 in [Min, Max].
func (r Range) Resolve() float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + randFloat()*(r.Max-r.Min)
}
