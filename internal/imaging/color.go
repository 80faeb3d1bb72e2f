package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains a sampled color in several representations.
type ColorResult struct {
	Hex string   `json:"hex"` // "#RRGGBB", alpha excluded
	RGB RGBColor `json:"rgb"`
	HSL HSLColor `json:"hsl"`
	A   uint8    `json:"a"`
}

// ParseColor parses "#RRGGBB" or "#RGB" into an opaque color.
func ParseColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// Hex formats c as "#RRGGBB".
func Hex(c color.Color) string {
	cf, _ := colorful.MakeColor(c)
	r, g, b := cf.RGB255()
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// Distance returns the perceptual CIEDE2000 difference between two colors.
// Values near 0 are indistinguishable; black and white are about 1.
func Distance(a, b color.Color) float64 {
	ca, okA := colorful.MakeColor(a)
	cb, okB := colorful.MakeColor(b)
	if !okA || !okB {
		return 0
	}
	return ca.DistanceCIEDE2000(cb)
}

// SampleColor reads the color of a single pixel and reports it in hex, RGB
// and HSL form.
//
// Parameters:
//   - img: The image to sample, typically a rendered infographic.
//   - x: X coordinate in img's coordinate space (0 = leftmost pixel for
//     images whose bounds start at the origin).
//   - y: Y coordinate, likewise.
//
// Returns:
//   - *ColorResult: The pixel color. Hex and HSL ignore alpha; A carries it.
//   - error: Non-nil if (x, y) lies outside img.Bounds().
//
// # Color Conversion
//
// The pixel is converted to non-premultiplied 8-bit NRGBA first, so a
// half-transparent pixel reports its straight color rather than a darkened
// premultiplied value. HSL comes from go-colorful and is rounded to whole
// degrees and percentages.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if !image.Pt(x, y).In(bounds) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	nc := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	opaque := color.NRGBA{R: nc.R, G: nc.G, B: nc.B, A: 255}
	cf, _ := colorful.MakeColor(opaque)
	h, s, l := cf.Hsl()

	return &ColorResult{
		Hex: Hex(opaque),
		RGB: RGBColor{R: nc.R, G: nc.G, B: nc.B},
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
		A: nc.A,
	}, nil
}
