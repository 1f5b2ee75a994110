package party

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Affine is a 2D affine matrix [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Affine [6]float64

// IdentityTransform is the identity affine matrix.
var IdentityTransform = Affine{1, 0, 0, 1, 0, 0}

// ParticleTransform maps a shape's unit space onto the screen for s.
//
// Composition order:
//
//	Scale(ShapeUnit*Size * flip) -> Rotate(Rotation.Z) -> Translate(Location.X, Location.Y)
//
// The X and Y rotations cannot be expressed in 2D; they are projected as a
// flip, squashing the shape's height by cos(X) and its width by cos(Y), the
// way a CSS rotateX/rotateY looks head-on.
func ParticleTransform(s Snapshot) Affine {
	size := ShapeUnit * s.Size
	sx := size * math.Cos(mgl64.DegToRad(s.Rotation.Y()))
	sy := size * math.Cos(mgl64.DegToRad(s.Rotation.X()))
	sin, cos := math.Sincos(mgl64.DegToRad(s.Rotation.Z()))
	return Affine{
		cos * sx, sin * sx,
		-sin * sy, cos * sy,
		s.Location.X(), s.Location.Y(),
	}
}

// Multiply returns m * c, applying c first.
func (m Affine) Multiply(c Affine) Affine {
	return Affine{
		m[0]*c[0] + m[2]*c[1],
		m[1]*c[0] + m[3]*c[1],
		m[0]*c[2] + m[2]*c[3],
		m[1]*c[2] + m[3]*c[3],
		m[0]*c[4] + m[2]*c[5] + m[4],
		m[1]*c[4] + m[3]*c[5] + m[5],
	}
}

// Invert returns the inverse of m, or the identity matrix if m is singular.
func (m Affine) Invert() Affine {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return IdentityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms the point (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// ViewTransform maps world coordinates into a viewport: world point
// (origin.X, origin.Y) lands on (0, 0) and distances are multiplied by zoom.
func ViewTransform(origin Vector, zoom float64) Affine {
	return Affine{zoom, 0, 0, zoom, -origin.X() * zoom, -origin.Y() * zoom}
}
