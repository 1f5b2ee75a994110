package party

import "testing"

func TestNewParticleDefaults(t *testing.T) {
	p := NewParticle()
	if p.Size != 1 {
		t.Errorf("Size = %v, want 1", p.Size)
	}
	if p.Color != White {
		t.Errorf("Color = %v, want White", p.Color)
	}
	if p.Opacity != 1 {
		t.Errorf("Opacity = %v, want 1", p.Opacity)
	}
	if p.Lifetime != 0 || p.Location != (Vector{}) || p.Velocity != (Vector{}) {
		t.Errorf("unexpected non-zero state: %+v", p)
	}
}

func TestNewParticleSnapshotsInitialValues(t *testing.T) {
	p := NewParticle(
		WithLifetime(4),
		WithSize(2),
		WithRotation(Vector{0, 0, 45}),
	)
	p.Lifetime = 1
	p.Size = 0.5
	p.Rotation = Vector{}

	if p.InitialLifetime() != 4 {
		t.Errorf("InitialLifetime = %v, want 4", p.InitialLifetime())
	}
	if p.InitialSize() != 2 {
		t.Errorf("InitialSize = %v, want 2", p.InitialSize())
	}
	if p.InitialRotation() != (Vector{0, 0, 45}) {
		t.Errorf("InitialRotation = %v, want (0, 0, 45)", p.InitialRotation())
	}
	assertNear(t, "Elapsed", p.Elapsed(), 3)
	assertNear(t, "RelativeElapsed", p.RelativeElapsed(), 0.75)
}

func TestParticleIDsIncrease(t *testing.T) {
	a := NewParticle()
	b := NewParticle()
	c := newParticle(1, 1, Vector{}, Vector{}, Vector{}, White)
	if !(a.ID() < b.ID() && b.ID() < c.ID()) {
		t.Errorf("IDs not increasing: %d, %d, %d", a.ID(), b.ID(), c.ID())
	}
}

func TestRelativeElapsedWithoutLifetime(t *testing.T) {
	p := NewParticle()
	if got := p.RelativeElapsed(); got != 1 {
		t.Errorf("RelativeElapsed = %v, want 1", got)
	}
}

func TestParticleSnapshot(t *testing.T) {
	p := NewParticle(
		WithLocation(Vector{1, 2, 3}),
		WithColor(Color{0.5, 0.25, 0}),
		WithOpacity(0.4),
		WithVelocity(Vector{9, 9, 9}),
	)
	s := p.Snapshot()
	if s.ID != p.ID() || s.Location != p.Location || s.Color != p.Color || s.Opacity != 0.4 {
		t.Errorf("snapshot %+v does not match particle %+v", s, p)
	}
	p.Location = Vector{}
	if s.Location != (Vector{1, 2, 3}) {
		t.Error("snapshot must not alias the particle")
	}
}
