package turtle

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var (
	Black = color.RGBA{0, 0, 0, 255}
	White = color.RGBA{255, 255, 255, 255}
)

// Palette is the UCBLogo 16-colour palette addressed by SETPENCOLOR n.
var Palette = [16]color.RGBA{
	{0, 0, 0, 255},       // 0 black
	{0, 0, 255, 255},     // 1 blue
	{0, 255, 0, 255},     // 2 green
	{0, 255, 255, 255},   // 3 cyan
	{255, 0, 0, 255},     // 4 red
	{255, 0, 255, 255},   // 5 magenta
	{255, 255, 0, 255},   // 6 yellow
	{255, 255, 255, 255}, // 7 white
	{155, 96, 59, 255},   // 8 brown
	{197, 136, 18, 255},  // 9 tan
	{100, 162, 64, 255},  // 10 forest
	{120, 187, 187, 255}, // 11 aqua
	{255, 149, 119, 255}, // 12 salmon
	{144, 113, 208, 255}, // 13 purple
	{255, 163, 0, 255},   // 14 orange
	{183, 183, 183, 255}, // 15 grey
}

var namedColors = map[string]int{
	"black": 0, "blue": 1, "green": 2, "cyan": 3, "red": 4, "magenta": 5,
	"yellow": 6, "white": 7, "brown": 8, "tan": 9, "forest": 10, "aqua": 11,
	"salmon": 12, "purple": 13, "orange": 14, "grey": 15, "gray": 15,
}

// PaletteColor returns palette entry n.
func PaletteColor(n int) (color.RGBA, error) {
	if n < 0 || n >= len(Palette) {
		return color.RGBA{}, fmt.Errorf("colour index %d outside 0..%d", n, len(Palette)-1)
	}
	return Palette[n], nil
}

// ParseColor accepts a palette name ("red"), a palette index ("4") or a hex
// triple ("#ff8800").
func ParseColor(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if idx, ok := namedColors[name]; ok {
		return Palette[idx], nil
	}
	if n, err := strconv.Atoi(name); err == nil {
		return PaletteColor(n)
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		v, err := strconv.ParseUint(name[1:], 16, 32)
		if err == nil {
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
		}
	}
	return color.RGBA{}, fmt.Errorf("unknown colour %q", s)
}

// RGB builds an opaque colour from channel values clamped to 0..255.
func RGB(r, g, b float64) color.RGBA {
	return color.RGBA{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b), A: 255}
}

func clampChannel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}
