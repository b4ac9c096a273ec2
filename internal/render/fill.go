package render

import (
	"image"
	"image/color"
)

// FloodFill recolours the 4-connected region of pixels exactly matching the
// colour at seed. With reverse set, matching pixels are inverted instead of
// painted. It reports whether anything changed; filling a region with its own
// colour does nothing.
func FloodFill(img *image.RGBA, seed image.Point, fill color.RGBA, reverse bool) bool {
	if !seed.In(img.Bounds()) {
		return false
	}
	target := img.RGBAAt(seed.X, seed.Y)
	if !reverse && target == fill {
		return false
	}
	replacement := fill
	if reverse {
		replacement = invert(target)
	}

	bounds := img.Bounds()
	stack := []image.Point{seed}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !p.In(bounds) || img.RGBAAt(p.X, p.Y) != target {
			continue
		}
		img.SetRGBA(p.X, p.Y, replacement)
		stack = append(stack,
			image.Pt(p.X+1, p.Y),
			image.Pt(p.X-1, p.Y),
			image.Pt(p.X, p.Y+1),
			image.Pt(p.X, p.Y-1),
		)
	}
	return true
}
