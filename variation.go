package party

import "math/rand/v2"

// Variation is a value resolved on demand: a constant, a pick from a set, or
// the result of a function. Every call to Resolve evaluates again; callers
// that need the same value twice must keep the first result.
type Variation[T any] interface {
	Resolve() T
}

type constant[T any] struct {
	value T
}

func (c constant[T]) Resolve() T { return c.value }

// Constant returns a Variation that always resolves to v.
func Constant[T any](v T) Variation[T] {
	return constant[T]{value: v}
}

type oneOf[T any] []T

func (o oneOf[T]) Resolve() T {
	if len(o) == 0 {
		var zero T
		return zero
	}
	return o[randIntN(len(o))]
}

// OneOf returns a Variation that picks one of values uniformly at random.
// An empty set resolves to the zero value of T.
func OneOf[T any](values ...T) Variation[T] {
	return oneOf[T](values)
}

// Func is a Variation computed by calling the function.
type Func[T any] func() T

// Resolve calls f.
func (f Func[T]) Resolve() T { return f() }

// Resolve evaluates v, or returns fallback when v is nil.
func Resolve[T any](v Variation[T], fallback T) T {
	if v == nil {
		return fallback
	}
	return v.Resolve()
}

type intRange struct {
	min, max int
}

func (r intRange) Resolve() int {
	if r.max <= r.min {
		return r.min
	}
	return r.min + randIntN(r.max-r.min+1)
}

// IntRange returns a Variation resolving to a uniformly distributed integer
// in [min, max].
func IntRange(min, max int) Variation[int] {
	return intRange{min: min, max: max}
}

// Skew returns a Variation resolving to value ± amount.
func Skew(value, amount float64) Variation[float64] {
	return Range{Min: value - amount, Max: value + amount}
}

// SkewRelative returns a Variation resolving to value ± value*fraction.
func SkewRelative(value, fraction float64) Variation[float64] {
	return Skew(value, value*fraction)
}

// SplineSample returns a Variation that evaluates s at a random time in
// [0, 1). Gradients work the same way: SplineSample(gradient) picks a random
// colour along it.
func SplineSample[T any](s *Spline[T]) Variation[T] {
	return Func[T](func() T {
		return s.Evaluate(randFloat())
	})
}

// randFloat and randIntN are the package's only uses of math/rand.
func randFloat() float64 {
	return rand.Float64()
}

func randIntN(n int) int {
	return rand.IntN(n)
}
