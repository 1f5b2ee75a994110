package party

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeUnit is the edge length, in pixels, of a shape drawn at size 1.
const ShapeUnit = 10

// Shape is a catalog entry renderers draw particles with. Points outline the
// shape as a polygon in unit space, centered on the origin, within
// [-0.5, 0.5] on both axes. Glyph stands in for the shape on character
// displays.
type Shape struct {
	Name   string
	Points []mgl64.Vec2
	Glyph  rune
}

var (
	shapesMu sync.RWMutex
	shapes   = map[string]Shape{}
)

func init() {
	RegisterShape(Shape{Name: "square", Points: rectPoints(1, 1), Glyph: '■'})
	RegisterShape(Shape{Name: "rectangle", Points: rectPoints(1, 0.5), Glyph: '▬'})
	RegisterShape(Shape{Name: "circle", Points: ellipsePoints(0.5, 0.5, 20), Glyph: '●'})
	RegisterShape(Shape{Name: "roundedSquare", Points: roundedRectPoints(1, 1, 0.2), Glyph: '▪'})
	RegisterShape(Shape{Name: "roundedRectangle", Points: roundedRectPoints(1, 0.5, 0.15), Glyph: '▭'})
	RegisterShape(Shape{Name: "star", Points: starPoints(5, 0.5, 0.2), Glyph: '★'})
}

// RegisterShape adds or replaces a catalog entry. It is safe to call from
// init functions of other packages.
func RegisterShape(s Shape) {
	shapesMu.Lock()
	shapes[s.Name] = s
	shapesMu.Unlock()
}

// LookupShape returns the catalog entry for name.
func LookupShape(name string) (Shape, error) {
	shapesMu.RLock()
	s, ok := shapes[name]
	shapesMu.RUnlock()
	if !ok {
		return Shape{}, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}
	return s, nil
}

// ShapeNames returns the registered shape names, sorted.
func ShapeNames() []string {
	shapesMu.RLock()
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	shapesMu.RUnlock()
	sort.Strings(names)
	return names
}

func rectPoints(w, h float64) []mgl64.Vec2 {
	hw, hh := w/2, h/2
	return []mgl64.Vec2{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
}

func ellipsePoints(rx, ry float64, n int) []mgl64.Vec2 {
	pts := make([]mgl64.Vec2, n)
	for i := range pts {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i] = mgl64.Vec2{cos * rx, sin * ry}
	}
	return pts
}

// roundedRectPoints outlines a rectangle whose corners are quarter circles of
// radius r, four segments per corner.
func roundedRectPoints(w, h, r float64) []mgl64.Vec2 {
	const segments = 4
	hw, hh := w/2-r, h/2-r
	centers := [4]mgl64.Vec2{{hw, hh}, {-hw, hh}, {-hw, -hh}, {hw, -hh}}
	pts := make([]mgl64.Vec2, 0, 4*(segments+1))
	for c, center := range centers {
		for i := 0; i <= segments; i++ {
			a := float64(c)*math.Pi/2 + float64(i)*math.Pi/2/segments
			sin, cos := math.Sincos(a)
			pts = append(pts, mgl64.Vec2{center[0] + cos*r, center[1] + sin*r})
		}
	}
	return pts
}

func starPoints(spikes int, outer, inner float64) []mgl64.Vec2 {
	pts := make([]mgl64.Vec2, 0, spikes*2)
	for i := 0; i < spikes*2; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		// Start at the top spike.
		sin, cos := math.Sincos(-math.Pi/2 + float64(i)*math.Pi/float64(spikes))
		pts = append(pts, mgl64.Vec2{cos * r, sin * r})
	}
	return pts
}
