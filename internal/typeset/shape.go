package typeset

import (
	"errors"
	"image"
	"strings"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// ErrEmptyText is returned when there is nothing to shape.
var ErrEmptyText = errors.New("text is empty")

// BoundingBox is the pixel size of a run of shaped text.
type BoundingBox struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Line is one run of shaped text at a fixed pixel size.
type Line struct {
	Text string
	Size int

	// Ink is the union of glyph ink extents relative to the pen origin on the
	// baseline, with Y growing downward. It is empty when no glyph has ink.
	Ink image.Rectangle

	output shaping.Output
	font   *Font
}

// Bounds returns the size of the ink rectangle.
func (l *Line) Bounds() BoundingBox {
	return BoundingBox{Width: l.Ink.Dx(), Height: l.Ink.Dy()}
}

// GlyphCount returns the number of glyphs produced by the shaper. For complex
// scripts this differs from the rune count.
func (l *Line) GlyphCount() int {
	return len(l.output.Glyphs)
}

// Normalize converts text to NFC and collapses line breaks and runs of
// whitespace into single spaces.
func Normalize(text string) string {
	return strings.Join(strings.Fields(norm.NFC.String(text)), " ")
}

// Shape runs the HarfBuzz shaper over text with f at size pixels per em.
//
// Shaping applies the script's reordering, conjunct and mark positioning
// rules, so the ink extents reflect what is actually drawn rather than a sum
// of per-codepoint advances.
func Shape(text string, f *Font, size int) (*Line, error) {
	text = Normalize(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if size <= 0 {
		return nil, errors.New("font size must be positive")
	}

	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      f.face,
		Size:      fixed.I(size),
		Script:    f.Profile.Script,
		Language:  f.Profile.Language(),
	}

	var shaper shaping.HarfbuzzShaper
	out := shaper.Shape(input)

	return &Line{
		Text:   text,
		Size:   size,
		Ink:    inkBounds(out),
		output: out,
		font:   f,
	}, nil
}

// MeasureText returns the pixel extents of text rendered with f at size.
func MeasureText(text string, f *Font, size int) (BoundingBox, error) {
	line, err := Shape(text, f, size)
	if err != nil {
		return BoundingBox{}, err
	}
	return line.Bounds(), nil
}

// inkBounds unions the glyph extents reported by the shaper. Glyph extents
// are Y-up with Height negative; the result is Y-down.
func inkBounds(out shaping.Output) image.Rectangle {
	var (
		minX, minY, maxX, maxY fixed.Int26_6
		found                  bool
		pen                    fixed.Int26_6
	)

	for _, g := range out.Glyphs {
		if g.Width != 0 && g.Height != 0 {
			x0 := pen + g.XOffset + g.XBearing
			x1 := x0 + g.Width
			y0 := -(g.YOffset + g.YBearing)
			y1 := y0 - g.Height
			if x1 < x0 {
				x0, x1 = x1, x0
			}
			if y1 < y0 {
				y0, y1 = y1, y0
			}

			if !found {
				minX, minY, maxX, maxY = x0, y0, x1, y1
				found = true
			} else {
				minX = min(minX, x0)
				minY = min(minY, y0)
				maxX = max(maxX, x1)
				maxY = max(maxY, y1)
			}
		}
		pen += g.XAdvance
	}

	if !found {
		return image.Rectangle{}
	}
	return image.Rect(minX.Floor(), minY.Floor(), maxX.Ceil(), maxY.Ceil())
}
