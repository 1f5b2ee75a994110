package party

import "sync/atomic"

// ParticleID identifies a particle for its whole lifetime. IDs are never
// reused, so renderers can key visual resources by them across frames.
type ParticleID uint64

var lastParticleID atomic.Uint64

func nextParticleID() ParticleID {
	return ParticleID(lastParticleID.Add(1))
}

// Particle is one visual instance. It holds state only; the owning Emitter
// advances it and modules rewrite its mutable fields every tick.
type Particle struct {
	id ParticleID

	// Lifetime is the remaining lifetime in seconds. It only decreases.
	Lifetime float64
	Size     float64
	Location Vector
	// Rotation holds euler angles in degrees.
	Rotation Vector
	Velocity Vector
	Color    Color
	Opacity  float64

	initialLifetime float64
	initialSize     float64
	initialRotation Vector
}

// ParticleOption configures a particle created with NewParticle.
type ParticleOption func(*Particle)

// WithLifetime sets the lifetime in seconds (default 0).
func WithLifetime(seconds float64) ParticleOption {
	return func(p *Particle) { p.Lifetime = seconds }
}

// WithSize sets the size multiplier (default 1).
func WithSize(size float64) ParticleOption {
	return func(p *Particle) { p.Size = size }
}

// WithLocation sets the position (default origin).
func WithLocation(v Vector) ParticleOption {
	return func(p *Particle) { p.Location = v }
}

// WithRotation sets the euler rotation in degrees (default zero).
func WithRotation(v Vector) ParticleOption {
	return func(p *Particle) { p.Rotation = v }
}

// WithVelocity sets the velocity in pixels per second (default zero).
func WithVelocity(v Vector) ParticleOption {
	return func(p *Particle) { p.Velocity = v }
}

// WithColor sets the color (default white).
func WithColor(c Color) ParticleOption {
	return func(p *Particle) { p.Color = c }
}

// WithOpacity sets the opacity (default 1).
func WithOpacity(opacity float64) ParticleOption {
	return func(p *Particle) { p.Opacity = opacity }
}

// NewParticle creates a particle with a fresh ID. The initial lifetime, size
// and rotation are snapshotted from the resolved values.
func NewParticle(opts ...ParticleOption) *Particle {
	p := &Particle{
		Size:    1,
		Color:   White,
		Opacity: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.id = nextParticleID()
	p.snapshotInitial()
	return p
}

// newParticle is the allocation-light constructor used by emitters.
func newParticle(lifetime, size float64, location, rotation, velocity Vector, color Color) *Particle {
	p := &Particle{
		id:       nextParticleID(),
		Lifetime: lifetime,
		Size:     size,
		Location: location,
		Rotation: rotation,
		Velocity: velocity,
		Color:    color,
		Opacity:  1,
	}
	p.snapshotInitial()
	return p
}

func (p *Particle) snapshotInitial() {
	p.initialLifetime = p.Lifetime
	p.initialSize = p.Size
	p.initialRotation = p.Rotation
}

// ID returns the particle's identifier.
func (p *Particle) ID() ParticleID { return p.id }

// InitialLifetime returns the lifetime the particle was created with.
func (p *Particle) InitialLifetime() float64 { return p.initialLifetime }

// InitialSize returns the size the particle was created with.
func (p *Particle) InitialSize() float64 { return p.initialSize }

// InitialRotation returns the rotation the particle was created with.
func (p *Particle) InitialRotation() Vector { return p.initialRotation }

// Elapsed returns the seconds lived so far.
func (p *Particle) Elapsed() float64 {
	return p.initialLifetime - p.Lifetime
}

// RelativeElapsed returns the fraction of the initial lifetime lived so far.
// A particle created without lifetime counts as fully elapsed.
func (p *Particle) RelativeElapsed() float64 {
	if p.initialLifetime <= 0 {
		return 1
	}
	return p.Elapsed() / p.initialLifetime
}

// Snapshot is the read-only view of a particle handed to renderers.
type Snapshot struct {
	ID       ParticleID
	Location Vector
	Rotation Vector
	Size     float64
	Color    Color
	Opacity  float64
}

// Snapshot copies the state a renderer needs.
func (p *Particle) Snapshot() Snapshot {
	return Snapshot{
		ID:       p.id,
		Location: p.Location,
		Rotation: p.Rotation,
		Size:     p.Size,
		Color:    p.Color,
		Opacity:  p.Opacity,
	}
}
