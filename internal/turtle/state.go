package turtle

import (
	"fmt"
	"image/color"
	"math"
)

// PenMode is the compositing rule applied when a segment is stroked.
type PenMode int

const (
	PenPaint PenMode = iota
	PenErase
	PenReverse
)

func (m PenMode) String() string {
	switch m {
	case PenErase:
		return "erase"
	case PenReverse:
		return "reverse"
	default:
		return "paint"
	}
}

// HomeHeading points up. Headings are east-reference, counter-clockwise.
const HomeHeading = 90.0

// State is the turtle pose and pen. X and Y are logical coordinates with the
// origin at the canvas centre and y growing upwards.
type State struct {
	X, Y       float64
	Heading    float64
	PenDown    bool
	PenMode    PenMode
	PenColor   color.RGBA
	Background color.RGBA
	PenSize    float64
	Visible    bool
}

// Initial is the state a fresh turtle starts in and CLEARSCREEN returns to.
func Initial() State {
	return State{
		Heading:    HomeHeading,
		PenDown:    true,
		PenMode:    PenPaint,
		PenColor:   Black,
		Background: White,
		PenSize:    1,
		Visible:    true,
	}
}

// Compass converts an internal heading to Logo compass degrees
// (0 = up, clockwise) in [0, 360).
func Compass(heading float64) float64 {
	return Normalize(HomeHeading - heading)
}

// FromCompass converts Logo compass degrees to an internal heading in [0, 360).
func FromCompass(deg float64) float64 {
	return Normalize(HomeHeading - deg)
}

// Normalize maps any angle into [0, 360).
func Normalize(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	// -0 and values that round to 360 both collapse to 0
	if d == 0 || d >= 360 {
		return 0
	}
	return d
}

// Advance returns the point distance units along heading from (x, y).
func Advance(x, y, heading, distance float64) (float64, float64) {
	rad := heading * math.Pi / 180
	return x + distance*math.Cos(rad), y + distance*math.Sin(rad)
}

func (s State) String() string {
	pen := "Down"
	if !s.PenDown {
		pen = "Up"
	}
	return fmt.Sprintf("X:%.2f Y:%.2f deg:%.2f Pen:%s Mode:%s Color:%v Size:%.1f",
		s.X, s.Y, Compass(s.Heading), pen, s.PenMode, s.PenColor, s.PenSize)
}
