// Package imagerender draws party scenes into an offscreen raster with the
// gg software renderer. It needs no window or GPU, which makes it suitable
// for headless frame dumps, previews and golden-image tests.
//
// Usage:
//
//	r := imagerender.New(imagerender.Options{Width: 640, Height: 480, Dir: "frames"})
//	defer r.Close()
//	scene.SetRenderer(r)
package imagerender

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"

	"github.com/phanxgames/party"
)

// Options configure a Renderer.
type Options struct {
	Width, Height int

	// Background fills the frame on Begin. Ignored when Transparent is set.
	Background  party.Color
	Transparent bool

	// View maps world coordinates to pixels. The zero value means identity.
	View party.Affine

	// Dir, when set, receives a PNG of every completed frame named
	// <Prefix>_<frame>.png. Leave empty to keep frames in memory only.
	Dir    string
	Prefix string
}

// Renderer rasterizes particles as filled polygons from the shape catalog.
type Renderer struct {
	opts   Options
	ctx    *gg.Context
	shapes *party.ElementCache[party.Shape]
	frame  int
	err    error

	snapshotQueue []string
}

// New creates a renderer with a canvas of the configured size.
func New(opts Options) *Renderer {
	if opts.Width <= 0 {
		opts.Width = 640
	}
	if opts.Height <= 0 {
		opts.Height = 480
	}
	if opts.View == (party.Affine{}) {
		opts.View = party.IdentityTransform
	}
	if opts.Prefix == "" {
		opts.Prefix = "frame"
	}
	return &Renderer{
		opts:   opts,
		ctx:    gg.NewContext(opts.Width, opts.Height),
		shapes: party.NewElementCache[party.Shape](),
	}
}

// Begin clears the canvas.
func (r *Renderer) Begin() {
	r.shapes.Begin()
	if r.opts.Transparent {
		r.ctx.Clear()
		return
	}
	bg := r.opts.Background
	r.ctx.ClearWithColor(gg.RGB(bg.R, bg.G, bg.B))
}

// RenderParticle fills the particle's shape.
func (r *Renderer) RenderParticle(p party.Snapshot, opts *party.RendererOptions) {
	shape := r.shapes.GetOrCreate(p.ID, opts.PickShape)
	c, a := opts.Shade(p)
	if a <= 0 {
		return
	}
	m := r.opts.View.Multiply(opts.Transform(p))

	r.ctx.SetRGBA(c.R, c.G, c.B, a)
	for i, pt := range shape.Points {
		x, y := m.Apply(pt.X(), pt.Y())
		if i == 0 {
			r.ctx.MoveTo(x, y)
		} else {
			r.ctx.LineTo(x, y)
		}
	}
	r.ctx.ClosePath()
	if err := r.ctx.Fill(); err != nil && r.err == nil {
		r.err = fmt.Errorf("imagerender: fill particle %d: %w", p.ID, err)
		party.Logger().Warn("imagerender: fill failed", slog.Any("error", err))
	}
}

// End releases shapes of despawned particles and writes the frame to Dir
// plus any queued snapshots.
func (r *Renderer) End() {
	r.shapes.Sweep(nil)
	r.frame++

	if r.opts.Dir != "" {
		path := filepath.Join(r.opts.Dir, fmt.Sprintf("%s_%05d.png", sanitizeLabel(r.opts.Prefix), r.frame))
		r.save(path)
	}
	for _, label := range r.snapshotQueue {
		dir := r.opts.Dir
		if dir == "" {
			dir = "."
		}
		r.save(filepath.Join(dir, fmt.Sprintf("%s_%05d.png", sanitizeLabel(label), r.frame)))
	}
	r.snapshotQueue = r.snapshotQueue[:0]
}

// Snapshot queues a labeled PNG of the frame being drawn. It is written on
// End, into Dir or the working directory.
func (r *Renderer) Snapshot(label string) {
	r.snapshotQueue = append(r.snapshotQueue, label)
}

func (r *Renderer) save(path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.fail(fmt.Errorf("imagerender: mkdir %s: %w", filepath.Dir(path), err))
		return
	}
	if err := r.ctx.SavePNG(path); err != nil {
		r.fail(fmt.Errorf("imagerender: save %s: %w", path, err))
	}
}

func (r *Renderer) fail(err error) {
	party.Logger().Warn("imagerender: frame not written", slog.Any("error", err))
	if r.err == nil {
		r.err = err
	}
}

// Image returns the current canvas.
func (r *Renderer) Image() image.Image {
	return r.ctx.Image()
}

// SavePNG writes the current canvas to path.
func (r *Renderer) SavePNG(path string) error {
	return r.ctx.SavePNG(path)
}

// Frames returns the number of completed frames.
func (r *Renderer) Frames() int {
	return r.frame
}

// Err returns the first drawing or writing error, if any.
func (r *Renderer) Err() error {
	return r.err
}

// Close releases the canvas.
func (r *Renderer) Close() error {
	return r.ctx.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
