// Package termrender draws party scenes on a character terminal through
// tcell. Each particle becomes one cell showing its shape's glyph in the
// particle's color, faded towards the background by its opacity.
package termrender

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/party"
)

// Options configure a Renderer.
type Options struct {
	// CellWidth and CellHeight are the world units covered by one terminal
	// cell. Defaults to 8 by 16, the usual glyph aspect.
	CellWidth, CellHeight float64
	// Background is the terminal background particles fade into.
	Background party.Color
}

// Renderer is a party.Renderer drawing into a tcell screen.
type Renderer struct {
	screen tcell.Screen
	opts   Options
	bg     tcell.Color
	glyphs *party.ElementCache[rune]
	drawn  int
}

// New creates a renderer for an initialized screen.
func New(screen tcell.Screen, opts Options) *Renderer {
	if opts.CellWidth <= 0 {
		opts.CellWidth = 8
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = 16
	}
	return &Renderer{
		screen: screen,
		opts:   opts,
		bg:     toTcell(opts.Background),
		glyphs: party.NewElementCache[rune](),
	}
}

// WorldSize returns the world area the screen covers.
func (r *Renderer) WorldSize() (w, h float64) {
	cols, rows := r.screen.Size()
	return float64(cols) * r.opts.CellWidth, float64(rows) * r.opts.CellHeight
}

// Begin clears the screen.
func (r *Renderer) Begin() {
	r.glyphs.Begin()
	r.screen.Fill(' ', tcell.StyleDefault.Background(r.bg))
	r.drawn = 0
}

// RenderParticle puts the particle's glyph into the cell under its location.
// Particles outside the screen are skipped.
func (r *Renderer) RenderParticle(p party.Snapshot, opts *party.RendererOptions) {
	// Off-screen particles keep their glyph for when they come back.
	glyph := r.glyphs.GetOrCreate(p.ID, func() rune {
		return opts.PickShape().Glyph
	})
	x := int(math.Floor(p.Location.X() / r.opts.CellWidth))
	y := int(math.Floor(p.Location.Y() / r.opts.CellHeight))
	cols, rows := r.screen.Size()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}

	c, a := opts.Shade(p)
	if a <= 0 {
		return
	}
	fg := r.opts.Background.Mix(c, a)
	style := tcell.StyleDefault.Foreground(toTcell(fg)).Background(r.bg)
	r.screen.SetContent(x, y, glyph, nil, style)
	r.drawn++
}

// End shows the frame.
func (r *Renderer) End() {
	r.glyphs.Sweep(nil)
	r.screen.Show()
}

// Drawn returns the number of cells written in the last frame.
func (r *Renderer) Drawn() int {
	return r.drawn
}

func toTcell(c party.Color) tcell.Color {
	cr, cg, cb := c.RGB255()
	return tcell.NewRGBColor(int32(cr), int32(cg), int32(cb))
}
