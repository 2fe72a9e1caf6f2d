package core

import (
	"fmt"
	"math"
)

// Color is a 24-bit foreground color for a screen cell.
// The zero value means "terminal default".
type Color struct {
	R, G, B uint8
	Set     bool
}

// RGB creates a color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Set: true}
}

// Hex returns the color as "#rrggbb", or "" for the default color.
func (c Color) Hex() string {
	if !c.Set {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// LerpColor blends from a (t=0) to b (t=1), rounding each channel.
func LerpColor(a, b Color, t float64) Color {
	return Color{
		R:   uint8(math.Round(Lerp(float64(a.R), float64(b.R), t))),
		G:   uint8(math.Round(Lerp(float64(a.G), float64(b.G), t))),
		B:   uint8(math.Round(Lerp(float64(a.B), float64(b.B), t))),
		Set: true,
	}
}
