package party

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Renderer presents particles. A scene calls Begin, then RenderParticle once
// for every live particle, then End, after all emitters were ticked. A
// renderer must treat particle IDs as stable keys across frames and release
// any visual resource whose particle was not presented since Begin.
type Renderer interface {
	Begin()
	RenderParticle(p Snapshot, opts *RendererOptions)
	End()
}

// RendererOptions is the renderer-facing part of an emitter's configuration.
// The simulation core only validates Shapes; everything else is interpreted
// by the renderer.
type RendererOptions struct {
	// Shapes lists catalog keys to draw particles with. Each particle gets one
	// of them at random when it is first presented. Defaults to "square".
	Shapes []string

	DisableColor     bool // draw with the shape's default white
	DisableOpacity   bool // ignore particle opacity
	DisableLighting  bool // skip rotation-based shading
	DisableTransform bool // ignore size and rotation, keep only location
}

// PickShape chooses one of the configured shapes.
func (o *RendererOptions) PickShape() Shape {
	name := "square"
	if len(o.Shapes) > 0 {
		name = o.Shapes[randIntN(len(o.Shapes))]
	}
	s, err := LookupShape(name)
	if err != nil {
		// Emitter construction validated the keys; a shape removed later falls
		// back to the square.
		s, _ = LookupShape("square")
	}
	return s
}

// Shade returns the color and opacity a renderer should draw p with,
// honouring the Disable toggles.
func (o *RendererOptions) Shade(p Snapshot) (Color, float64) {
	c := p.Color
	if o.DisableColor {
		c = White
	}
	if !o.DisableLighting {
		c = c.Scale(Brightness(p.Rotation))
	}
	a := p.Opacity
	if o.DisableOpacity {
		a = 1
	}
	return c, math.Max(0, math.Min(1, a))
}

// Transform returns the unit-to-screen matrix for p, honouring
// DisableTransform.
func (o *RendererOptions) Transform(p Snapshot) Affine {
	if o.DisableTransform {
		p.Size = 1
		p.Rotation = Vector{}
	}
	return ParticleTransform(p)
}

// Lighting returns how directly a particle rotated by the euler angles (in
// degrees) faces the viewer: 1 head-on, 0 edge-on, -1 facing away.
func Lighting(rotation Vector) float64 {
	q := mgl64.AnglesToQuat(
		mgl64.DegToRad(rotation.X()),
		mgl64.DegToRad(rotation.Y()),
		mgl64.DegToRad(rotation.Z()),
		mgl64.XYZ,
	)
	return q.Rotate(Forward).Dot(Forward)
}

// Brightness maps Lighting to a color multiplier in [0.5, 1]. Both faces of
// a particle are lit alike.
func Brightness(rotation Vector) float64 {
	return 0.5 + 0.5*math.Abs(Lighting(rotation))
}

type cacheEntry[T any] struct {
	value T
	frame uint64
}

// ElementCache keeps one visual handle per particle ID and releases the ones
// whose particle was not presented during the current frame. Renderers call
// Begin and Sweep from their own Begin and End.
type ElementCache[T any] struct {
	entries map[ParticleID]cacheEntry[T]
	frame   uint64
}

// NewElementCache returns an empty cache.
func NewElementCache[T any]() *ElementCache[T] {
	return &ElementCache[T]{entries: make(map[ParticleID]cacheEntry[T])}
}

// Begin starts a new frame.
func (c *ElementCache[T]) Begin() {
	c.frame++
}

// Get returns the handle for id and marks it presented this frame.
func (c *ElementCache[T]) Get(id ParticleID) (T, bool) {
	e, ok := c.entries[id]
	if ok {
		e.frame = c.frame
		c.entries[id] = e
	}
	return e.value, ok
}

// Put stores the handle for id and marks it presented this frame.
func (c *ElementCache[T]) Put(id ParticleID, v T) {
	c.entries[id] = cacheEntry[T]{value: v, frame: c.frame}
}

// GetOrCreate returns the cached handle for id, creating it with create when
// missing.
func (c *ElementCache[T]) GetOrCreate(id ParticleID, create func() T) T {
	if v, ok := c.Get(id); ok {
		return v
	}
	v := create()
	c.Put(id, v)
	return v
}

// Sweep removes every handle not presented since Begin, passing each to
// release when it is non-nil, and returns how many were removed.
func (c *ElementCache[T]) Sweep(release func(ParticleID, T)) int {
	removed := 0
	for id, e := range c.entries {
		if e.frame == c.frame {
			continue
		}
		delete(c.entries, id)
		if release != nil {
			release(id, e.value)
		}
		removed++
	}
	return removed
}

// Len returns the number of cached handles.
func (c *ElementCache[T]) Len() int {
	return len(c.entries)
}

// Frame is one recorded render pass.
type Frame struct {
	Particles []Snapshot
	Options   []*RendererOptions // parallel to Particles
}

// Recorder is a Renderer that keeps the most recent frame in memory. It is
// handy in tests and as the hand-off point for renderers that draw on a
// different cadence than the simulation ticks.
type Recorder struct {
	current Frame
	last    Frame
	frames  int
}

// Begin starts recording a frame.
func (r *Recorder) Begin() {
	r.current.Particles = r.current.Particles[:0]
	r.current.Options = r.current.Options[:0]
}

// RenderParticle records p.
func (r *Recorder) RenderParticle(p Snapshot, opts *RendererOptions) {
	r.current.Particles = append(r.current.Particles, p)
	r.current.Options = append(r.current.Options, opts)
}

// End publishes the recorded frame.
func (r *Recorder) End() {
	r.current, r.last = r.last, r.current
	r.frames++
}

// Last returns the most recently completed frame. The slices are reused by
// the next frame.
func (r *Recorder) Last() Frame {
	return r.last
}

// Frames returns how many frames were completed.
func (r *Recorder) Frames() int {
	return r.frames
}
