package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

// NewCanvas allocates a width x height canvas filled with bg.
func NewCanvas(width, height int, bg color.Color) *image.NRGBA {
	return imaging.New(width, height, bg)
}

// BorderRect returns the outer rectangle of a border whose outer edge sits
// inset pixels in from every side of a width x height canvas.
//
// # Geometry
//
// The border is described by its outermost pixels, which lie on the lines
// x = inset, x = width-inset, y = inset and y = height-inset. Both edges
// are included, so the returned rectangle has an exclusive Max of
// width-inset+1 and height-inset+1:
//
//	800x450, inset 10  ->  (10,10)-(791,441)
//
// Pair it with InnerRect to get the area left inside a stroke and with
// DrawBorder to paint it.
func BorderRect(width, height, inset int) image.Rectangle {
	return image.Rect(inset, inset, width-inset+1, height-inset+1)
}

// InnerRect returns the area enclosed by a border of the given stroke width
// drawn along outer.
func InnerRect(outer image.Rectangle, stroke int) image.Rectangle {
	return outer.Inset(stroke)
}

// DrawBorder strokes the edges of outer with c.
//
// Parameters:
//   - img: Destination, usually a canvas from NewCanvas.
//   - outer: Outer edge of the border, as returned by BorderRect.
//   - stroke: Line width in pixels. The stroke grows inward from outer, so
//     the painted band is outer minus InnerRect(outer, stroke).
//   - c: Stroke color.
//
// Parts of the border outside img are clipped. A stroke of zero or less
// draws nothing; a stroke at least half the rectangle's width or height
// fills it.
func DrawBorder(img draw.Image, outer image.Rectangle, stroke int, c color.Color) {
	if stroke <= 0 || outer.Empty() {
		return
	}
	if stroke*2 >= outer.Dx() || stroke*2 >= outer.Dy() {
		draw.Draw(img, outer, image.NewUniform(c), image.Point{}, draw.Src)
		return
	}

	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, outer.Min.Y+stroke),
		image.Rect(outer.Min.X, outer.Max.Y-stroke, outer.Max.X, outer.Max.Y),
		image.Rect(outer.Min.X, outer.Min.Y+stroke, outer.Min.X+stroke, outer.Max.Y-stroke),
		image.Rect(outer.Max.X-stroke, outer.Min.Y+stroke, outer.Max.X, outer.Max.Y-stroke),
	}
	for _, e := range edges {
		draw.Draw(img, e, src, image.Point{}, draw.Src)
	}
}
