package typeset

import (
	"image"
	"image/draw"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// maskPad is the blank margin kept around the ink rectangle so antialiased
// edges of curves that overshoot the reported extents are not cut off.
const maskPad = 1

// Mask rasterizes the line's glyph outlines into an alpha mask.
//
// The mask covers Ink grown by one pixel on every side. Offset is the
// position of the mask's top-left corner relative to the ink rectangle's
// top-left corner, so drawing the mask at inkPos.Add(offset) places the ink
// at inkPos.
func (l *Line) Mask() (mask *image.Alpha, offset image.Point) {
	ink := l.Ink
	w := ink.Dx() + 2*maskPad
	h := ink.Dy() + 2*maskPad
	offset = image.Pt(-maskPad, -maskPad)
	mask = image.NewAlpha(image.Rect(0, 0, w, h))
	if ink.Empty() {
		return mask, offset
	}

	// Pen origin on the baseline, in mask coordinates.
	originX := float32(maskPad - ink.Min.X)
	originY := float32(maskPad - ink.Min.Y)

	face := l.font.face
	scale := fixedToFloat(l.output.Size) / float32(face.Upem())

	r := vector.NewRasterizer(w, h)
	var pen float32
	for _, g := range l.output.Glyphs {
		x := originX + pen + fixedToFloat(g.XOffset)
		y := originY - fixedToFloat(g.YOffset)
		if outline, ok := face.GlyphData(g.GlyphID).(font.GlyphOutline); ok {
			traceOutline(r, outline, x, y, scale)
		}
		pen += fixedToFloat(g.XAdvance)
	}
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	return mask, offset
}

// DrawTo composites the line onto dst in color src with the top-left of the
// ink rectangle at pos. Pixels outside dst are clipped.
func (l *Line) DrawTo(dst draw.Image, pos image.Point, src image.Image) {
	mask, offset := l.Mask()
	target := mask.Bounds().Add(pos.Add(offset))
	draw.DrawMask(dst, target, src, image.Point{}, mask, image.Point{}, draw.Over)
}

// traceOutline feeds one glyph's segments to r. Outline coordinates are font
// units with Y up; (x, y) is the glyph origin in raster space with Y down.
func traceOutline(r *vector.Rasterizer, outline font.GlyphOutline, x, y, scale float32) {
	pt := func(p ot.SegmentPoint) (float32, float32) {
		return x + p.X*scale, y - p.Y*scale
	}

	open := false
	for _, seg := range outline.Segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			if open {
				r.ClosePath()
			}
			r.MoveTo(pt(seg.Args[0]))
			open = true
		case ot.SegmentOpLineTo:
			r.LineTo(pt(seg.Args[0]))
		case ot.SegmentOpQuadTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			r.QuadTo(bx, by, cx, cy)
		case ot.SegmentOpCubeTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			dx, dy := pt(seg.Args[2])
			r.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if open {
		r.ClosePath()
	}
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
