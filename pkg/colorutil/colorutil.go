// Package colorutil provides shared color utilities for the routing debug
// visualizations.
package colorutil

import (
	"image/color"
	"math"
)

// Common overlay colors used throughout the debug visualizations.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Blue    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Green   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Red     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

// HSVToRGB converts HSV (h in degrees 0-360, s and v in 0-1) to an opaque
// color.RGBA.
func HSVToRGB(h, s, v float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, x, 0
	}

	return color.RGBA{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
		A: 255,
	}
}

// goldenAngle spaces successive hues maximally apart so that a small palette
// generated in index order looks visually distinct without any lookahead.
const goldenAngle = 137.50776405003785

// PaletteColor deterministically derives the i'th color of an unbounded
// palette, used to assign distinct colors to nets in visualize.ColorMap by
// first-seen order.
func PaletteColor(i int) color.RGBA {
	h := math.Mod(float64(i)*goldenAngle, 360)
	return HSVToRGB(h, 0.65, 0.9)
}
