package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/arnavsurve/logo/internal/turtle"
	"github.com/disintegration/imaging"
)

const spriteSize = 21

// sprite is the turtle triangle, drawn pointing up and rotated per heading.
// Rotations are cached by whole degree and pen colour.
type sprite struct {
	cache map[spriteKey]*image.NRGBA
}

type spriteKey struct {
	deg   int
	color color.RGBA
}

func newSprite() *sprite {
	return &sprite{cache: map[spriteKey]*image.NRGBA{}}
}

// triangle renders an isosceles triangle with its apex at the top.
func triangle(c color.RGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, spriteSize, spriteSize))
	apex := [2]float64{spriteSize / 2, 1}
	left := [2]float64{3, spriteSize - 2}
	right := [2]float64{spriteSize - 4, spriteSize - 2}
	fill := color.NRGBA{R: c.R, G: c.G, B: c.B, A: 200}
	for y := 0; y < spriteSize; y++ {
		for x := 0; x < spriteSize; x++ {
			p := [2]float64{float64(x) + 0.5, float64(y) + 0.5}
			if inTriangle(p, apex, left, right) {
				img.SetNRGBA(x, y, fill)
			}
		}
	}
	return img
}

func inTriangle(p, a, b, c [2]float64) bool {
	side := func(p, q, r [2]float64) float64 {
		return (p[0]-r[0])*(q[1]-r[1]) - (q[0]-r[0])*(p[1]-r[1])
	}
	d1, d2, d3 := side(p, a, b), side(p, b, c), side(p, c, a)
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}

// image returns the sprite rotated to an internal heading. The base image
// points up, which is heading 90; imaging.Rotate turns counter-clockwise.
func (s *sprite) image(heading float64, c color.RGBA) *image.NRGBA {
	deg := int(math.Round(turtle.Normalize(heading - turtle.HomeHeading)))
	key := spriteKey{deg: deg % 360, color: c}
	if img, ok := s.cache[key]; ok {
		return img
	}
	img := imaging.Rotate(triangle(c), float64(key.deg), color.Transparent)
	s.cache[key] = img
	return img
}

// drawSprite saves the raster under the sprite and composites it at the
// turtle position. Hidden turtles draw nothing.
func (a *Animator) drawSprite(s turtle.State) {
	if !s.Visible {
		return
	}
	img := a.sprite.image(s.Heading, s.PenColor)
	center := a.toRaster(s.X, s.Y)
	b := img.Bounds()
	dst := image.Rect(0, 0, b.Dx(), b.Dy()).
		Add(center.Sub(image.Pt(b.Dx()/2, b.Dy()/2))).
		Intersect(a.img.Bounds())
	if dst.Empty() {
		return
	}

	saved := image.NewRGBA(dst)
	draw.Draw(saved, dst, a.img, dst.Min, draw.Src)
	a.saved = saved

	offset := dst.Min.Sub(center.Sub(image.Pt(b.Dx()/2, b.Dy()/2)))
	draw.Draw(a.img, dst, img, b.Min.Add(offset), draw.Over)
}

// eraseSprite restores the region saved by the last drawSprite.
func (a *Animator) eraseSprite() {
	if a.saved == nil {
		return
	}
	draw.Draw(a.img, a.saved.Bounds(), a.saved, a.saved.Bounds().Min, draw.Src)
	a.saved = nil
}
