package party

import (
	"math"
	"testing"
)

func TestPointSource(t *testing.T) {
	if got := PointSource(3, 4).Sample(); got != (Vector{3, 4, 0}) {
		t.Errorf("Sample = %v, want (3, 4, 0)", got)
	}
}

func TestRectSource(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 5}
	s := RectSource(r)
	for i := 0; i < 200; i++ {
		v := s.Sample()
		if !r.Contains(v.X(), v.Y()) || v.Z() != 0 {
			t.Fatalf("Sample = %v, outside %+v", v, r)
		}
	}
}

func TestCircleSource(t *testing.T) {
	c := Circle{X: -5, Y: 5, Radius: 2}
	s := CircleSource(c)
	for i := 0; i < 200; i++ {
		v := s.Sample()
		if d := math.Hypot(v.X()-c.X, v.Y()-c.Y); d > c.Radius+epsilon {
			t.Fatalf("Sample = %v, %v from center", v, d)
		}
	}
}

func TestSourceFunc(t *testing.T) {
	var s Source = SourceFunc(func() Vector { return Vector{1, 1, 1} })
	if s.Sample() != (Vector{1, 1, 1}) {
		t.Error("SourceFunc did not call the function")
	}
}

func TestRandomUnitVector(t *testing.T) {
	for i := 0; i < 100; i++ {
		assertNear(t, "length", RandomUnitVector().Len(), 1)
	}
}

func TestVectorFrom2DAngle(t *testing.T) {
	v := VectorFrom2DAngle(90)
	assertNear(t, "x", v.X(), 0)
	assertNear(t, "y", v.Y(), 1)
	v = VectorFrom2DAngle(180)
	assertNear(t, "x", v.X(), -1)
}

func TestRectContains(t *testing.T) {
	r := Rect{Width: 10, Height: 10}
	if !r.Contains(10, 10) {
		t.Error("edge should be inside")
	}
	if r.Contains(-0.1, 5) {
		t.Error("point left of the rect reported inside")
	}
}

// --- despawning rules ---

func TestDespawnLifetime(t *testing.T) {
	p := NewParticle(WithLifetime(0.1))
	if DespawnLifetime(p) {
		t.Error("live particle despawned")
	}
	p.Lifetime = 0
	if !DespawnLifetime(p) {
		t.Error("particle at lifetime 0 kept")
	}
}

func TestDespawnBounds(t *testing.T) {
	rule := DespawnBounds(Rect{Width: 100, Height: 100})
	tests := []struct {
		name     string
		location Vector
		velocity Vector
		want     bool
	}{
		{"inside", Vector{50, 50, 0}, Vector{0, 10, 0}, false},
		{"below falling", Vector{50, 150, 0}, Vector{0, 10, 0}, true},
		{"below rising", Vector{50, 150, 0}, Vector{0, -10, 0}, false},
		{"above", Vector{50, -50, 0}, Vector{0, -10, 0}, false},
		{"left side", Vector{-50, 50, 0}, Vector{-10, 10, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParticle(WithLocation(tt.location), WithVelocity(tt.velocity))
			if got := rule(p); got != tt.want {
				t.Errorf("rule = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDespawnAny(t *testing.T) {
	never := func(*Particle) bool { return false }
	always := func(*Particle) bool { return true }
	p := NewParticle()
	if DespawnAny(never, never)(p) {
		t.Error("no rule matched but DespawnAny did")
	}
	if !DespawnAny(never, always)(p) {
		t.Error("a rule matched but DespawnAny did not")
	}
	if DespawnAny()(p) {
		t.Error("empty DespawnAny matched")
	}
}
