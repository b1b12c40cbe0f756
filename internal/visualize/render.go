package visualize

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"pcb-tracer/pkg/geometry"
)

// Render rasterizes a GraphicsObject onto a width x height PNG at path,
// mapping the board region `bounds` onto the full canvas. This is the debug
// interface's concrete rendering backend (SPEC_FULL §2.1): a write-only
// visualization sink, not the interactive GUI the outer pipeline driver
// (out of scope, SPEC_FULL §1) would provide.
func Render(obj GraphicsObject, bounds geometry.Rect, width, height int, path string) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	toPixel := func(p geometry.Point2D) (int, int) {
		if bounds.Width == 0 || bounds.Height == 0 {
			return 0, 0
		}
		x := int((p.X - bounds.X) / bounds.Width * float64(width))
		y := int((p.Y - bounds.Y) / bounds.Height * float64(height))
		return x, y
	}

	for _, r := range obj.Rects {
		x0, y0 := toPixel(geometry.Point2D{X: r.R.X, Y: r.R.Y})
		x1, y1 := toPixel(geometry.Point2D{X: r.R.X + r.R.Width, Y: r.R.Y + r.R.Height})
		drawRect(img, x0, y0, x1, y1, r.Color, r.Filled)
	}
	for _, l := range obj.Lines {
		x0, y0 := toPixel(l.A)
		x1, y1 := toPixel(l.B)
		drawLine(img, x0, y0, x1, y1, l.Color)
	}
	for _, c := range obj.Circles {
		cx, cy := toPixel(c.Center)
		rad := 3
		if bounds.Width > 0 {
			rad = int(c.Radius / bounds.Width * float64(width))
		}
		drawCircle(img, cx, cy, rad, c.Color)
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: color.Black},
		Face: basicfont.Face7x13,
	}
	for _, p := range obj.Points {
		x, y := toPixel(p.P)
		drawCircle(img, x, y, 2, p.Color)
		if p.Label != "" {
			d.Dot = fixed.P(x+4, y-4)
			d.DrawString(p.Label)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create visualization file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode visualization png: %w", err)
	}
	return nil
}

func drawRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA, filled bool) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	if filled {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				img.Set(x, y, c)
			}
		}
		return
	}
	drawLine(img, x0, y0, x1, y0, c)
	drawLine(img, x1, y0, x1, y1, c)
	drawLine(img, x1, y1, x0, y1, c)
	drawLine(img, x0, y1, x0, y0, c)
}

// drawLine implements Bresenham's algorithm.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func drawCircle(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	if radius <= 0 {
		img.Set(cx, cy, c)
		return
	}
	x, y, d := radius, 0, 1-radius
	for x >= y {
		plot8 := [8][2]int{
			{cx + x, cy + y}, {cx - x, cy + y}, {cx + x, cy - y}, {cx - x, cy - y},
			{cx + y, cy + x}, {cx - y, cy + x}, {cx + y, cy - x}, {cx - y, cy - x},
		}
		for _, p := range plot8 {
			img.Set(p[0], p[1], c)
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
