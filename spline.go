package party

import (
	"fmt"
	"slices"
	"sort"
)

// Key is a time-keyed sample of a spline.
type Key[T any] struct {
	Time  float64
	Value T
}

// At is shorthand for Key[T]{Time: time, Value: value}.
func At[T any](time float64, value T) Key[T] {
	return Key[T]{Time: time, Value: value}
}

// Interpolator blends a towards b by t in [0, 1].
type Interpolator[T any] func(a, b T, t float64) T

// Spline is a smooth function between time-keyed samples. Queries before the
// first key or after the last key clamp to that key's value.
//
// A Spline is also a module Driver: it is evaluated at the driving factor.
type Spline[T any] struct {
	keys   []Key[T]
	interp Interpolator[T]
}

// NewSpline sorts keys by time (stable, so equal times keep their order) and
// returns a spline blending neighbouring keys with interp.
func NewSpline[T any](interp Interpolator[T], keys ...Key[T]) (*Spline[T], error) {
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}
	if interp == nil {
		return nil, fmt.Errorf("%w: spline has no interpolator", ErrInvalidConfig)
	}
	sorted := slices.Clone(keys)
	slices.SortStableFunc(sorted, func(a, b Key[T]) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})
	return &Spline[T]{keys: sorted, interp: interp}, nil
}

// Evaluate returns the spline's value at time t.
func (s *Spline[T]) Evaluate(t float64) T {
	if len(s.keys) == 1 {
		return s.keys[0].Value
	}
	// First key strictly after t.
	i := sort.Search(len(s.keys), func(i int) bool {
		return s.keys[i].Time > t
	})
	switch i {
	case len(s.keys):
		return s.keys[len(s.keys)-1].Value
	case 0:
		return s.keys[0].Value
	}
	lo, hi := s.keys[i-1], s.keys[i]
	return s.interp(lo.Value, hi.Value, (t-lo.Time)/(hi.Time-lo.Time))
}

// Keys returns the sorted keys. The returned slice MUST NOT be mutated.
func (s *Spline[T]) Keys() []Key[T] {
	return s.keys
}

// Drive evaluates the spline at the driving factor.
func (s *Spline[T]) Drive(factor float64, _ *Particle) T {
	return s.Evaluate(factor)
}

// NewNumericSpline returns a linearly interpolated scalar spline.
func NewNumericSpline(keys ...Key[float64]) (*Spline[float64], error) {
	return NewSpline(lerp, keys...)
}

// NewVectorSpline returns a component-wise linearly interpolated vector
// spline.
func NewVectorSpline(keys ...Key[Vector]) (*Spline[Vector], error) {
	return NewSpline(lerpVector, keys...)
}

// NewGradient returns a color spline that mixes neighbouring keys channel by
// channel.
func NewGradient(keys ...Key[Color]) (*Spline[Color], error) {
	return NewSpline(Color.Mix, keys...)
}

// Must panics if err is non-nil. Use it for package-level presets:
//
//	var fade = party.Must(party.NewSmoothSpline(party.At(0.0, 1.0), party.At(1.0, 0.0)))
func Must[T any](s *Spline[T], err error) *Spline[T] {
	if err != nil {
		panic(err)
	}
	return s
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpVector(a, b Vector, t float64) Vector {
	return Vector{lerp(a[0], b[0], t), lerp(a[1], b[1], t), lerp(a[2], b[2], t)}
}
