// Package preset provides ready-made party effects, loads effect
// definitions from YAML files and replays scripted spawns across frames.
package preset

import (
	"math"

	"github.com/phanxgames/party"
)

// ConfettiOptions tune Confetti. Nil fields take the template values.
type ConfettiOptions struct {
	Count    party.Variation[int]     // default 20 to 40
	Spread   party.Variation[float64] // cone half-angle in degrees, default 35 to 45
	Speed    party.Variation[float64] // default 300 to 600
	Size     party.Variation[float64] // default 1 ± 20%
	Rotation party.Variation[party.Vector]
	Color    party.Variation[party.Color] // default random bright hue
	Modules  []party.Module
	Shapes   []string // default square and circle
}

// Confetti returns a single burst of tumbling paper shot upward from source.
// The spread is resolved once, so every particle of the burst shares one
// cone.
func Confetti(source party.Source, opts ConfettiOptions) party.EmitterConfig {
	count := orDefault(opts.Count, party.IntRange(20, 40))
	spread := party.Resolve(opts.Spread, party.Range{Min: 35, Max: 45}.Resolve())
	if opts.Modules == nil {
		opts.Modules = []party.Module{
			party.Drive(party.PropSize).
				By(party.DriverFunc[float64](func(t float64, _ *party.Particle) float64 {
					return math.Min(1, t*3)
				})).
				Relative().
				MustBuild(),
			party.RotationOverLifetime(party.DriverFunc[party.Vector](func(t float64, _ *party.Particle) party.Vector {
				return party.Vector{140, 200, 260}.Mul(t)
			})),
		}
	}
	if len(opts.Shapes) == 0 {
		opts.Shapes = []string{"square", "circle"}
	}

	cfg := party.DefaultEmitterConfig()
	cfg.Emitter.Duration = 8
	cfg.Emitter.Loops = 1
	cfg.Emitter.Modules = opts.Modules
	cfg.Emission.Rate = 0
	cfg.Emission.Bursts = []party.Burst{{Time: 0, Count: count}}
	cfg.Emission.InitialLifetime = party.Constant(8.0)
	cfg.Emission.InitialSpeed = orDefault(opts.Speed, party.Variation[float64](party.Range{Min: 300, Max: 600}))
	cfg.Emission.InitialSize = orDefault(opts.Size, party.SkewRelative(1, 0.2))
	cfg.Emission.InitialRotation = orDefault(opts.Rotation, party.Variation[party.Vector](party.Func[party.Vector](func() party.Vector {
		return party.RandomUnitVector().Mul(180)
	})))
	cfg.Emission.InitialColor = orDefault(opts.Color, party.Variation[party.Color](party.Func[party.Color](func() party.Color {
		return party.ColorFromHSL(party.Range{Min: 0, Max: 360}.Resolve(), 1, 0.7)
	})))
	cfg.Shape.Source = source
	cfg.Shape.Angle = party.Skew(-90, spread)
	cfg.Renderer.Shapes = opts.Shapes
	return cfg
}

// SparklesOptions tune Sparkles. Nil fields take the template values.
type SparklesOptions struct {
	Count    party.Variation[int]     // default 10 to 20
	Speed    party.Variation[float64] // default 100 to 200
	Size     party.Variation[float64] // default 0.8 to 1.8
	Rotation party.Variation[party.Vector]
	Color    party.Variation[party.Color] // default golden
	Modules  []party.Module
	Shapes   []string // default star
}

var (
	sparkleSize = party.Must(party.NewSmoothSpline(
		party.At(0.0, 0.0), party.At(0.3, 1.0), party.At(0.7, 1.0), party.At(1.0, 0.0),
	))
	sparkleFade = party.Must(party.NewSmoothSpline(
		party.At(0.0, 1.0), party.At(0.5, 1.0), party.At(1.0, 0.0),
	))
)

// Sparkles returns a weightless burst of twinkling stars in every direction
// from source.
func Sparkles(source party.Source, opts SparklesOptions) party.EmitterConfig {
	if opts.Modules == nil {
		opts.Modules = []party.Module{
			party.RotationOverLifetime(party.DriverFunc[party.Vector](func(t float64, _ *party.Particle) party.Vector {
				return party.Vector{0, 0, 200}.Mul(t)
			})),
			party.SizeOverLifetime(sparkleSize),
			party.OpacityOverLifetime(sparkleFade),
		}
	}
	if len(opts.Shapes) == 0 {
		opts.Shapes = []string{"star"}
	}

	cfg := party.DefaultEmitterConfig()
	cfg.Emitter.Duration = 3
	cfg.Emitter.Loops = 1
	cfg.Emitter.UseGravity = false
	cfg.Emitter.Modules = opts.Modules
	cfg.Emission.Rate = 0
	cfg.Emission.Bursts = []party.Burst{{Time: 0, Count: orDefault(opts.Count, party.IntRange(10, 20))}}
	cfg.Emission.InitialLifetime = party.Range{Min: 1, Max: 2}
	cfg.Emission.InitialSpeed = orDefault(opts.Speed, party.Variation[float64](party.Range{Min: 100, Max: 200}))
	cfg.Emission.InitialSize = orDefault(opts.Size, party.Variation[float64](party.Range{Min: 0.8, Max: 1.8}))
	cfg.Emission.InitialRotation = orDefault(opts.Rotation, party.Variation[party.Vector](party.Func[party.Vector](func() party.Vector {
		return party.Vector{0, 0, party.Range{Min: 0, Max: 360}.Resolve()}
	})))
	cfg.Emission.InitialColor = orDefault(opts.Color, party.Variation[party.Color](party.Func[party.Color](func() party.Color {
		return party.ColorFromHSL(50, 1, party.Range{Min: 0.55, Max: 0.85}.Resolve())
	})))
	cfg.Shape.Source = source
	cfg.Shape.Angle = party.Range{Min: 0, Max: 360}
	cfg.Renderer.Shapes = opts.Shapes
	return cfg
}

func orDefault[T any](v, fallback party.Variation[T]) party.Variation[T] {
	if v == nil {
		return fallback
	}
	return v
}
