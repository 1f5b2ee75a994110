package party

import (
	"testing"
)

func TestLighting(t *testing.T) {
	tests := []struct {
		name     string
		rotation Vector
		want     float64
	}{
		{"facing", Vector{0, 0, 0}, 1},
		{"spin in plane", Vector{0, 0, 123}, 1},
		{"edge-on x", Vector{90, 0, 0}, 0},
		{"edge-on y", Vector{0, 90, 0}, 0},
		{"facing away", Vector{180, 0, 0}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNear(t, "Lighting", Lighting(tt.rotation), tt.want)
		})
	}
}

func TestBrightness(t *testing.T) {
	assertNear(t, "facing", Brightness(Vector{}), 1)
	assertNear(t, "edge-on", Brightness(Vector{90, 0, 0}), 0.5)
	assertNear(t, "back face", Brightness(Vector{180, 0, 0}), 1)
}

func TestShade(t *testing.T) {
	p := Snapshot{Color: Color{0.4, 0.6, 0.8}, Opacity: 0.5, Rotation: Vector{90, 0, 0}}

	tests := []struct {
		name    string
		opts    RendererOptions
		color   Color
		opacity float64
	}{
		{"lit", RendererOptions{}, Color{0.2, 0.3, 0.4}, 0.5},
		{"no lighting", RendererOptions{DisableLighting: true}, Color{0.4, 0.6, 0.8}, 0.5},
		{"no color", RendererOptions{DisableColor: true, DisableLighting: true}, White, 0.5},
		{"no opacity", RendererOptions{DisableOpacity: true, DisableLighting: true}, Color{0.4, 0.6, 0.8}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, a := tt.opts.Shade(p)
			assertColor(t, "color", c, tt.color, 1e-9)
			assertNear(t, "opacity", a, tt.opacity)
		})
	}
}

func TestShadeClampsOpacity(t *testing.T) {
	var opts RendererOptions
	if _, a := opts.Shade(Snapshot{Opacity: 1.7}); a != 1 {
		t.Errorf("opacity = %v, want 1", a)
	}
	if _, a := opts.Shade(Snapshot{Opacity: -0.2}); a != 0 {
		t.Errorf("opacity = %v, want 0", a)
	}
}

func TestRendererOptionsTransform(t *testing.T) {
	p := Snapshot{Size: 3, Rotation: Vector{0, 0, 45}, Location: Vector{1, 2, 0}}
	opts := RendererOptions{DisableTransform: true}
	assertMatrix(t, "m", opts.Transform(p), Affine{ShapeUnit, 0, 0, ShapeUnit, 1, 2})
}

func TestPickShape(t *testing.T) {
	opts := RendererOptions{Shapes: []string{"star", "circle"}}
	for i := 0; i < 20; i++ {
		s := opts.PickShape()
		if s.Name != "star" && s.Name != "circle" {
			t.Fatalf("PickShape = %q, want star or circle", s.Name)
		}
	}
	var empty RendererOptions
	if s := empty.PickShape(); s.Name != "square" {
		t.Errorf("PickShape = %q, want square", s.Name)
	}
}

func TestElementCacheSweep(t *testing.T) {
	c := NewElementCache[string]()

	c.Begin()
	c.Put(1, "one")
	c.Put(2, "two")
	c.Sweep(nil)

	c.Begin()
	if v, ok := c.Get(1); !ok || v != "one" {
		t.Fatalf("Get(1) = %q, %v", v, ok)
	}
	var released []ParticleID
	n := c.Sweep(func(id ParticleID, v string) {
		released = append(released, id)
		if v != "two" {
			t.Errorf("released %q, want two", v)
		}
	})
	if n != 1 || len(released) != 1 || released[0] != 2 {
		t.Errorf("Sweep removed %d (%v), want [2]", n, released)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestElementCacheGetOrCreate(t *testing.T) {
	c := NewElementCache[int]()
	created := 0
	create := func() int { created++; return 42 }

	c.Begin()
	c.GetOrCreate(7, create)
	if v := c.GetOrCreate(7, create); v != 42 {
		t.Errorf("GetOrCreate = %d, want 42", v)
	}
	if created != 1 {
		t.Errorf("create called %d times, want 1", created)
	}
	if _, ok := c.Get(8); ok {
		t.Error("Get of unknown id reported ok")
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	opts := &RendererOptions{}

	r.Begin()
	r.RenderParticle(Snapshot{ID: 1}, opts)
	r.RenderParticle(Snapshot{ID: 2}, opts)
	r.End()

	r.Begin()
	r.RenderParticle(Snapshot{ID: 3}, opts)
	if got := len(r.Last().Particles); got != 2 {
		t.Errorf("Last during frame = %d particles, want the previous 2", got)
	}
	r.End()

	last := r.Last()
	if len(last.Particles) != 1 || last.Particles[0].ID != 3 || last.Options[0] != opts {
		t.Errorf("Last = %+v, want one particle with ID 3", last)
	}
	if r.Frames() != 2 {
		t.Errorf("Frames = %d, want 2", r.Frames())
	}
}
