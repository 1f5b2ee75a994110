// Package ebitenrender draws party scenes with [Ebitengine].
//
// The renderer collects every particle of a frame into one vertex batch and
// submits it with a single DrawTriangles32 call. Shapes come from the party
// shape catalog and are fan-triangulated on the CPU, so no textures are
// needed beyond a shared white pixel.
//
// For a window with zero boilerplate use [Run]; for full control wrap the
// scene in a [Game] or call [Renderer.Draw] from your own ebiten.Game.
//
// [Ebitengine]: https://ebitengine.org
package ebitenrender

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/party"
)

// BlendMode selects how particles composite onto the target.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
	BlendScreen                  // screen (1 - (1-src)*(1-dst); only brightens)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	default:
		return ebiten.BlendSourceOver
	}
}

// Options configure a Renderer.
type Options struct {
	// View maps world coordinates to screen pixels. The zero value means
	// identity.
	View  party.Affine
	Blend BlendMode
}

// Renderer is a party.Renderer that batches particles for ebiten.
//
// The simulation presents particles from Update while ebiten draws in Draw,
// so the renderer keeps the last completed batch and Draw submits it.
type Renderer struct {
	opts   Options
	shapes *party.ElementCache[party.Shape]

	// building is filled between Begin and End; ready is what Draw submits.
	building batch
	ready    batch
	frames   int
}

type batch struct {
	verts     []ebiten.Vertex
	inds      []uint32
	particles int
}

func (b *batch) reset() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
	b.particles = 0
}

// New creates a renderer.
func New(opts Options) *Renderer {
	if opts.View == (party.Affine{}) {
		opts.View = party.IdentityTransform
	}
	return &Renderer{
		opts:   opts,
		shapes: party.NewElementCache[party.Shape](),
	}
}

// SetView replaces the world-to-screen transform used from the next frame on.
func (r *Renderer) SetView(view party.Affine) {
	r.opts.View = view
}

// Begin starts a new batch.
func (r *Renderer) Begin() {
	r.shapes.Begin()
	r.building.reset()
}

// RenderParticle appends the particle's shape to the batch as a triangle fan.
func (r *Renderer) RenderParticle(p party.Snapshot, opts *party.RendererOptions) {
	shape := r.shapes.GetOrCreate(p.ID, opts.PickShape)
	if len(shape.Points) < 3 {
		return
	}
	c, a := opts.Shade(p)
	if a <= 0 {
		return
	}
	m := r.opts.View.Multiply(opts.Transform(p))

	// Premultiplied, as DrawTriangles32 expects with ColorScaleModePremultipliedAlpha.
	ca := float32(a)
	cr, cg, cb := float32(c.R)*ca, float32(c.G)*ca, float32(c.B)*ca

	b := &r.building
	base := uint32(len(b.verts))
	for _, pt := range shape.Points {
		x, y := m.Apply(pt.X(), pt.Y())
		b.verts = append(b.verts, ebiten.Vertex{
			DstX:   float32(x),
			DstY:   float32(y),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	for i := uint32(1); i+1 < uint32(len(shape.Points)); i++ {
		b.inds = append(b.inds, base, base+i, base+i+1)
	}
	b.particles++
}

// End publishes the batch for Draw and releases shapes of despawned
// particles.
func (r *Renderer) End() {
	r.shapes.Sweep(nil)
	r.building, r.ready = r.ready, r.building
	r.frames++
}

// Draw submits the last completed batch to target.
func (r *Renderer) Draw(target *ebiten.Image) {
	if len(r.ready.inds) == 0 {
		return
	}
	var triOp ebiten.DrawTrianglesOptions
	triOp.Blend = r.opts.Blend.EbitenBlend()
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	target.DrawTriangles32(r.ready.verts, r.ready.inds, whitePixel(), &triOp)
}

// Vertices returns the vertices and indices of the last completed batch.
// The slices are reused by later frames.
func (r *Renderer) Vertices() ([]ebiten.Vertex, []uint32) {
	return r.ready.verts, r.ready.inds
}

// Particles returns how many particles the last completed batch holds.
func (r *Renderer) Particles() int {
	return r.ready.particles
}

// Frames returns the number of completed frames.
func (r *Renderer) Frames() int {
	return r.frames
}

var (
	whitePixelOnce sync.Once
	whitePixelImg  *ebiten.Image
)

// whitePixel is a 3x3 white image; vertices sample its center so filtering
// never reaches the edge.
func whitePixel() *ebiten.Image {
	whitePixelOnce.Do(func() {
		whitePixelImg = ebiten.NewImage(3, 3)
		whitePixelImg.Fill(color.White)
	})
	return whitePixelImg
}

// toRGBA converts a party color to a non-premultiplied color.RGBA.
func toRGBA(c party.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
