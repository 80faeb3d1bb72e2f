package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Preview returns img scaled by scale with Lanczos resampling.
//
// Parameters:
//   - img: Source image. It is never modified.
//   - scale: Factor in (0, 4]. Values below 1 shrink for thumbnails; values
//     above 1 enlarge for close inspection of glyph edges.
//
// A scale of 1 returns img itself. Each side is at least one pixel after
// scaling. Scaled previews are for display only: they are resampled, so
// their pixels must not be used for border or margin checks.
func Preview(img image.Image, scale float64) (image.Image, error) {
	if scale <= 0 || scale > 4 {
		return nil, fmt.Errorf("preview scale %.2f out of range (0, 4]", scale)
	}
	if scale == 1.0 {
		return img, nil
	}

	b := img.Bounds()
	w := max(1, int(float64(b.Dx())*scale))
	h := max(1, int(float64(b.Dy())*scale))
	return imaging.Resize(img, w, h, imaging.Lanczos), nil
}
