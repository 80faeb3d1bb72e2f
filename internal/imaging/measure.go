package imaging

import (
	"image"
	"image/color"
)

// Margins is the blank space around ink inside a region, in pixels.
type Margins struct {
	Left   int `json:"left"`
	Right  int `json:"right"`
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

// HorizontalImbalance returns |Left - Right|.
func (m Margins) HorizontalImbalance() int {
	return absInt(m.Left - m.Right)
}

// VerticalImbalance returns |Top - Bottom|.
func (m Margins) VerticalImbalance() int {
	return absInt(m.Top - m.Bottom)
}

// InkBounds returns the smallest rectangle within region containing every
// pixel that differs from bg. ok is false when region holds only bg.
func InkBounds(img image.Image, region image.Rectangle, bg color.Color) (ink image.Rectangle, ok bool) {
	region = region.Intersect(img.Bounds())
	br, bgG, bb, ba := bg.RGBA()

	minX, minY := region.Max.X, region.Max.Y
	maxX, maxY := region.Min.X-1, region.Min.Y-1
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if r == br && g == bgG && b == bb && a == ba {
				continue
			}
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x)
			maxY = max(maxY, y)
		}
	}

	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// MeasureMargins finds the ink inside region and returns its distance to
// the edges of the whole image.
//
// Parameters:
//   - img: The composed canvas.
//   - region: Where to look for ink. Passing the area inside the border
//     keeps the border itself from counting as ink.
//   - bg: The background color. Any pixel that differs from it is ink.
//
// Returns:
//   - Margins: Pixels from the ink box to the left, right, top and bottom
//     edges of img.Bounds(), not of region, so the result reads the same way
//     as the layout's centering formula.
//   - bool: False when region holds no ink.
//
// Antialiased glyph edges count as ink, so measured margins may be a pixel
// narrower than the shaped ink box suggests.
func MeasureMargins(img image.Image, region image.Rectangle, bg color.Color) (Margins, bool) {
	ink, ok := InkBounds(img, region, bg)
	if !ok {
		return Margins{}, false
	}
	b := img.Bounds()
	return Margins{
		Left:   ink.Min.X - b.Min.X,
		Right:  b.Max.X - ink.Max.X,
		Top:    ink.Min.Y - b.Min.Y,
		Bottom: b.Max.Y - ink.Max.Y,
	}, true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
