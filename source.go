package party

import "math"

// Source samples the location a new particle spawns at.
type Source interface {
	Sample() Vector
}

// SourceFunc adapts a function to a Source.
type SourceFunc func() Vector

// Sample calls f.
func (f SourceFunc) Sample() Vector { return f() }

type pointSource Vector

func (s pointSource) Sample() Vector { return Vector(s) }

// PointSource spawns every particle at (x, y).
func PointSource(x, y float64) Source {
	return pointSource{x, y, 0}
}

type rectSource Rect

func (s rectSource) Sample() Vector {
	return Vector{
		s.X + randFloat()*s.Width,
		s.Y + randFloat()*s.Height,
		0,
	}
}

// RectSource spawns particles uniformly inside r.
func RectSource(r Rect) Source {
	return rectSource(r)
}

type circleSource Circle

func (s circleSource) Sample() Vector {
	// sqrt keeps the density uniform over the disc.
	r := s.Radius * math.Sqrt(randFloat())
	sin, cos := math.Sincos(2 * math.Pi * randFloat())
	return Vector{s.X + cos*r, s.Y + sin*r, 0}
}

// CircleSource spawns particles uniformly inside c.
func CircleSource(c Circle) Source {
	return circleSource(c)
}

// RandomUnitVector returns a uniformly distributed direction in 3D.
func RandomUnitVector() Vector {
	theta := 2 * math.Pi * randFloat()
	z := 2*randFloat() - 1
	r := math.Sqrt(1 - z*z)
	sin, cos := math.Sincos(theta)
	return Vector{r * cos, r * sin, z}
}
