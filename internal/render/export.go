package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
)

// Export writes the drawing, without the turtle sprite, to path. The format
// follows the file extension (png, jpg, gif, bmp, tif). A scale other than 1
// resizes the image with nearest-neighbour sampling to keep lines crisp.
func (a *Animator) Export(path string, scale float64) error {
	if scale <= 0 {
		return fmt.Errorf("export scale must be positive, got %g", scale)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	img := a.Image()
	if scale != 1 {
		w := int(float64(a.width) * scale)
		h := int(float64(a.height) * scale)
		if err := imaging.Save(imaging.Resize(img, max(w, 1), max(h, 1), imaging.NearestNeighbor), path); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	} else if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Debug().Str("phase", "render").Str("path", path).Float64("scale", scale).Msg("exported drawing")
	return nil
}
