package party

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync/atomic"
)

// Default emitter configuration values.
const (
	DefaultDuration     = 5.0
	DefaultLoops        = 1
	DefaultMaxParticles = 300
	DefaultRate         = 10.0
	DefaultLifetime     = 5.0
	DefaultSpeed        = 5.0
)

// EmitterOptions control an emitter's loop timing and particle behavior.
type EmitterOptions struct {
	// Duration is the length of one loop in seconds. Zero means DefaultDuration.
	Duration float64
	// Loops is the number of loops before the emitter expires. Zero means
	// DefaultLoops; negative loops forever. A scene drops an expired emitter
	// together with its live particles, so particles meant to outlive the
	// last loop need a Duration at least as long as their lifetime.
	Loops int
	// UseGravity pulls particles along Up by the scene's gravity.
	UseGravity bool
	// MaxParticles caps the live population; emitting past it evicts the
	// oldest particle. Zero means DefaultMaxParticles.
	MaxParticles int
	// DespawningRules remove a particle when any of them matches. A nil list
	// means DespawnLifetime, plus DespawnBounds when the scene has bounds; an
	// empty non-nil list never despawns.
	DespawningRules []DespawnRule
	// Modules run on every particle each tick, in order, after physics.
	Modules []Module
}

// Burst is a one-shot emission at a point within every loop.
type Burst struct {
	// Time is the offset into the loop, in seconds.
	Time float64
	// Count is resolved once per firing.
	Count Variation[int]
	// Probability gates the burst; nil always fires. The burst is attempted
	// once per loop whether or not the roll passes.
	Probability Variation[float64]
}

// EmissionOptions control when particles are born and their initial state.
// Nil variations take the documented defaults.
type EmissionOptions struct {
	// Rate is the continuous emission in particles per second. Zero or
	// negative disables it.
	Rate   float64
	Bursts []Burst

	InitialLifetime Variation[float64] // seconds, default DefaultLifetime
	InitialSpeed    Variation[float64] // pixels per second, default DefaultSpeed
	InitialSize     Variation[float64] // default 1
	InitialRotation Variation[Vector]  // euler degrees, default zero
	InitialColor    Variation[Color]   // default White
}

// ShapeOptions control where particles spawn and which way they fly.
type ShapeOptions struct {
	// Source samples spawn locations. Defaults to the origin.
	Source Source
	// Angle is the launch direction in degrees; 0 is right, 90 is down.
	// Defaults to 0.
	Angle Variation[float64]
}

// EmitterConfig groups the four independent option sets of an emitter.
type EmitterConfig struct {
	Emitter  EmitterOptions
	Emission EmissionOptions
	Shape    ShapeOptions
	Renderer RendererOptions
}

// DefaultEmitterConfig returns a configuration with every documented default
// filled in, including the ones whose zero value is meaningful (a rate of 10
// particles per second and gravity enabled).
func DefaultEmitterConfig() EmitterConfig {
	return EmitterConfig{
		Emitter: EmitterOptions{
			Duration:     DefaultDuration,
			Loops:        DefaultLoops,
			UseGravity:   true,
			MaxParticles: DefaultMaxParticles,
		},
		Emission: EmissionOptions{
			Rate:            DefaultRate,
			InitialLifetime: Constant(DefaultLifetime),
			InitialSpeed:    Constant(DefaultSpeed),
			InitialSize:     Constant(1.0),
			InitialRotation: Constant(Vector{}),
			InitialColor:    Constant(White),
		},
		Shape: ShapeOptions{
			Source: PointSource(0, 0),
			Angle:  Constant(0.0),
		},
		Renderer: RendererOptions{
			Shapes: []string{"square"},
		},
	}
}

// EmitterID identifies an emitter.
type EmitterID uint64

var lastEmitterID atomic.Uint64

// Emitter owns a population of particles and the timers governing their
// birth. An emitter is ticked by its scene; once expired it is inert.
type Emitter struct {
	id       EmitterID
	options  EmitterOptions
	emission EmissionOptions
	shape    ShapeOptions
	renderer RendererOptions
	gravity  float64

	particles []*Particle

	durationTimer   float64 // seconds into the current loop
	emissionTimer   float64 // rate emission accumulator
	currentLoop     int
	attemptedBursts []bool // indexed like emission.Bursts, reset every loop
}

// NewEmitter validates cfg, fills in defaults and returns an emitter using
// the gravity and particle ceiling from settings.
func NewEmitter(cfg EmitterConfig, settings Settings) (*Emitter, error) {
	opts := cfg.Emitter
	switch {
	case math.IsNaN(opts.Duration) || math.IsInf(opts.Duration, 0) || opts.Duration < 0:
		return nil, fmt.Errorf("%w: duration %v", ErrInvalidConfig, opts.Duration)
	case opts.Duration == 0:
		opts.Duration = DefaultDuration
	}
	if opts.Loops == 0 {
		opts.Loops = DefaultLoops
	}
	switch {
	case opts.MaxParticles < 0:
		return nil, fmt.Errorf("%w: max particles %d", ErrInvalidConfig, opts.MaxParticles)
	case opts.MaxParticles == 0:
		opts.MaxParticles = DefaultMaxParticles
	}
	if settings.MaxParticles > 0 && opts.MaxParticles > settings.MaxParticles {
		opts.MaxParticles = settings.MaxParticles
	}
	if opts.DespawningRules == nil {
		opts.DespawningRules = []DespawnRule{DespawnLifetime}
		if settings.Bounds != nil {
			opts.DespawningRules = append(opts.DespawningRules, DespawnBounds(*settings.Bounds))
		}
	}
	opts.Modules = slices.Clone(opts.Modules)
	for i, m := range opts.Modules {
		if m == nil {
			return nil, fmt.Errorf("%w: module %d is nil", ErrInvalidConfig, i)
		}
	}

	emission := cfg.Emission
	emission.Bursts = slices.Clone(emission.Bursts)
	for i, b := range emission.Bursts {
		if b.Count == nil {
			return nil, fmt.Errorf("%w: burst %d has no count", ErrInvalidConfig, i)
		}
	}
	if emission.InitialLifetime == nil {
		emission.InitialLifetime = Constant(DefaultLifetime)
	}
	if emission.InitialSpeed == nil {
		emission.InitialSpeed = Constant(DefaultSpeed)
	}
	if emission.InitialSize == nil {
		emission.InitialSize = Constant(1.0)
	}
	if emission.InitialRotation == nil {
		emission.InitialRotation = Constant(Vector{})
	}
	if emission.InitialColor == nil {
		emission.InitialColor = Constant(White)
	}

	shape := cfg.Shape
	if shape.Source == nil {
		shape.Source = PointSource(0, 0)
	}
	if shape.Angle == nil {
		shape.Angle = Constant(0.0)
	}

	renderer := cfg.Renderer
	if len(renderer.Shapes) == 0 {
		renderer.Shapes = []string{"square"}
	}
	renderer.Shapes = slices.Clone(renderer.Shapes)
	for _, name := range renderer.Shapes {
		if _, err := LookupShape(name); err != nil {
			return nil, fmt.Errorf("renderer options: %w", err)
		}
	}

	return &Emitter{
		id:              EmitterID(lastEmitterID.Add(1)),
		options:         opts,
		emission:        emission,
		shape:           shape,
		renderer:        renderer,
		gravity:         settings.Gravity,
		particles:       make([]*Particle, 0, min(opts.MaxParticles, 64)),
		attemptedBursts: make([]bool, len(emission.Bursts)),
	}, nil
}

// ID returns the emitter's identifier.
func (e *Emitter) ID() EmitterID { return e.id }

// Options returns the normalised emitter options.
func (e *Emitter) Options() EmitterOptions { return e.options }

// RendererOptions returns the options handed to the renderer with every
// particle of this emitter.
func (e *Emitter) RendererOptions() *RendererOptions { return &e.renderer }

// Particles returns the live particles, oldest first. The returned slice
// MUST NOT be mutated and is only valid until the next Tick.
func (e *Emitter) Particles() []*Particle { return e.particles }

// Len returns the number of live particles.
func (e *Emitter) Len() int { return len(e.particles) }

// CurrentLoop returns the number of completed loops.
func (e *Emitter) CurrentLoop() int { return e.currentLoop }

// DurationTimer returns the seconds elapsed in the current loop.
func (e *Emitter) DurationTimer() float64 { return e.durationTimer }

// EmissionTimer returns the rate emission accumulator in seconds.
func (e *Emitter) EmissionTimer() float64 { return e.emissionTimer }

// IsExpired reports whether the emitter ran all its loops. Emitters that
// loop forever never expire.
func (e *Emitter) IsExpired() bool {
	return e.options.Loops >= 0 && e.currentLoop >= e.options.Loops
}

// Clear removes all particles without touching the timers.
func (e *Emitter) Clear() {
	clear(e.particles)
	e.particles = e.particles[:0]
}

// Tick advances the emitter by delta seconds: loop timing, bursts, rate
// emission, then physics, modules and despawning for every particle, in that
// order. A negative or non-finite delta counts as zero. Tick never fails;
// degenerate configuration results in fewer or no particles.
func (e *Emitter) Tick(delta float64) {
	if e.IsExpired() {
		return
	}
	delta = sanitizeDelta(delta)

	e.durationTimer += delta
	if e.durationTimer >= e.options.Duration {
		e.currentLoop++
		if e.IsExpired() {
			return
		}
		e.durationTimer = 0
		clear(e.attemptedBursts)
	}

	e.tickBursts()
	e.tickRate(delta)
	e.tickParticles(delta)
}

func (e *Emitter) tickBursts() {
	for i := range e.emission.Bursts {
		b := &e.emission.Bursts[i]
		if b.Time > e.durationTimer || e.attemptedBursts[i] {
			continue
		}
		e.attemptedBursts[i] = true
		if b.Probability != nil && !(randFloat() < b.Probability.Resolve()) {
			continue
		}
		for n := b.Count.Resolve(); n > 0; n-- {
			e.emitParticle()
		}
	}
}

func (e *Emitter) tickRate(delta float64) {
	if !(e.emission.Rate > 0) {
		return
	}
	interval := 1 / e.emission.Rate
	if !(interval > 0) || math.IsInf(interval, 0) {
		return
	}
	e.emissionTimer += delta
	// A loop rather than a single check keeps counts right under large deltas.
	for e.emissionTimer > interval {
		e.emissionTimer -= interval
		e.emitParticle()
	}
}

func (e *Emitter) tickParticles(delta float64) {
	gravity := Up.Mul(e.gravity * delta)
	for i := len(e.particles) - 1; i >= 0; i-- {
		p := e.particles[i]
		p.Lifetime -= delta
		if e.options.UseGravity {
			p.Velocity = p.Velocity.Add(gravity)
		}
		p.Location = p.Location.Add(p.Velocity.Mul(delta))
		for _, m := range e.options.Modules {
			m.Apply(p)
		}
		if anyRule(e.options.DespawningRules, p) {
			e.particles = slices.Delete(e.particles, i, i+1)
		}
	}
}

// emitParticle spawns one particle from the emission and shape options. It
// evicts the oldest particle when the population exceeds MaxParticles.
func (e *Emitter) emitParticle() {
	speed := e.emission.InitialSpeed.Resolve()
	p := newParticle(
		e.emission.InitialLifetime.Resolve(),
		e.emission.InitialSize.Resolve(),
		e.shape.Source.Sample(),
		e.emission.InitialRotation.Resolve(),
		VectorFrom2DAngle(e.shape.Angle.Resolve()).Mul(speed),
		e.emission.InitialColor.Resolve(),
	)
	e.particles = append(e.particles, p)
	if len(e.particles) > e.options.MaxParticles {
		e.particles = slices.Delete(e.particles, 0, 1)
	}
}

// sanitizeDelta clamps negative and non-finite deltas to zero.
func sanitizeDelta(delta float64) float64 {
	if delta >= 0 && !math.IsInf(delta, 1) {
		return delta
	}
	Logger().Debug("party: ignoring invalid tick delta", slog.Float64("delta", delta))
	return 0
}
