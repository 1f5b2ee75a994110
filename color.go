package party

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGB color with components in [0, 1]. Opacity is kept
// separately on the particle.
type Color struct {
	R, G, B float64
}

// Common colors.
var (
	White = Color{1, 1, 1}
	Black = Color{0, 0, 0}
)

// ColorFromHex parses "#rrggbb" or "#rgb".
func ColorFromHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("party: parse color %q: %w", s, err)
	}
	return fromColorful(c), nil
}

// ColorFromHSL builds a color from hue in degrees [0, 360) and saturation and
// lightness in [0, 1].
func ColorFromHSL(h, s, l float64) Color {
	return fromColorful(colorful.Hsl(h, s, l).Clamped())
}

// Mix linearly interpolates each channel from c towards other by weight.
// A weight of 0 returns c and a weight of 1 returns other, both exactly.
func (c Color) Mix(other Color, weight float64) Color {
	switch {
	case weight <= 0:
		return c
	case weight >= 1:
		return other
	}
	return fromColorful(c.colorful().BlendRgb(other.colorful(), weight))
}

// Scale multiplies every channel by f and clamps the result to [0, 1].
func (c Color) Scale(f float64) Color {
	return fromColorful(colorful.Color{R: c.R * f, G: c.G * f, B: c.B * f}.Clamped())
}

// RGB255 returns the channels as bytes, clamping out-of-range values.
func (c Color) RGB255() (r, g, b uint8) {
	return c.colorful().Clamped().RGB255()
}

// Hex returns the "#rrggbb" form of the color.
func (c Color) Hex() string {
	return c.colorful().Clamped().Hex()
}

// IsValid reports whether every channel is a finite number in [0, 1].
func (c Color) IsValid() bool {
	for _, v := range [3]float64{c.R, c.G, c.B} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return false
		}
	}
	return true
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func fromColorful(c colorful.Color) Color {
	return Color{R: c.R, G: c.G, B: c.B}
}
