package render

import (
	"image"
	"image/color"

	"github.com/arnavsurve/logo/internal/turtle"
)

// stroke draws the segment p0-p1 with the pen of s. Reverse mode inverts
// each pixel once per motion; visited carries the pixels already touched by
// earlier segments of the same move.
func (a *Animator) stroke(p0, p1 image.Point, s turtle.State, visited map[image.Point]bool) {
	var paint func(p image.Point)
	switch s.PenMode {
	case turtle.PenErase:
		paint = func(p image.Point) { a.img.SetRGBA(p.X, p.Y, s.Background) }
	case turtle.PenReverse:
		paint = func(p image.Point) {
			if visited[p] {
				return
			}
			visited[p] = true
			a.img.SetRGBA(p.X, p.Y, invert(a.img.RGBAAt(p.X, p.Y)))
		}
	default:
		paint = func(p image.Point) { a.img.SetRGBA(p.X, p.Y, s.PenColor) }
	}

	bounds := a.img.Bounds()
	r := int(s.PenSize) / 2
	plot := func(x, y int) {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				p := image.Pt(x+dx, y+dy)
				if p.In(bounds) {
					paint(p)
				}
			}
		}
	}
	line(p0, p1, plot)
}

// line walks the pixels of p0-p1 with Bresenham's algorithm.
func line(p0, p1 image.Point, plot func(x, y int)) {
	x0, y0, x1, y1 := p0.X, p0.Y, p1.X, p1.Y
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
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
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

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// invert flips the colour channels and keeps alpha.
func invert(c color.RGBA) color.RGBA {
	return color.RGBA{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B, A: c.A}
}

func replaceColor(img *image.RGBA, from, to color.RGBA) {
	if from == to {
		return
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == from {
				img.SetRGBA(x, y, to)
			}
		}
	}
}
