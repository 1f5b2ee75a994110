package party

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Eased returns a scalar interpolator that remaps t through the easing
// function before blending linearly. Any gween easing works:
//
//	bounce := party.Must(party.NewSpline(party.Eased(ease.OutBounce), keys...))
func Eased(fn ease.TweenFunc) Interpolator[float64] {
	return func(a, b, t float64) float64 {
		return lerp(a, b, float64(fn(float32(t), 0, 1, 1)))
	}
}

// smooth is the cosine ease used by the stock effects: slow at both keys,
// fastest halfway between them. It matches ease.InOutSine at full precision.
func smooth(a, b, t float64) float64 {
	return lerp(a, b, (1-math.Cos(math.Pi*t))/2)
}

// NewSmoothSpline returns a scalar spline that eases between keys with a
// cosine curve instead of a straight line.
func NewSmoothSpline(keys ...Key[float64]) (*Spline[float64], error) {
	return NewSpline(smooth, keys...)
}
