// Package imaging provides the pixel-level building blocks for infographics:
// canvas allocation, border drawing, color parsing and sampling, ink
// measurement, PNG encoding and preview scaling.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner:
//   - X increases rightward
//   - Y increases downward
//   - Rectangles follow image.Rectangle: Min is inclusive, Max is exclusive
//
// Canvases created here always start at the origin, so a canvas of width W
// has valid X coordinates 0 to W-1.
//
// # Border Geometry
//
// A border is described by three numbers: the inset of its outer edge from
// the canvas edge, its stroke width and the padding kept between the stroke
// and any text. For the default 800x450 canvas with inset 10, stroke 3 and
// padding 10:
//
//	BorderRect(800, 450, 10)          (10,10)-(791,441)
//	InnerRect(outer, 3)               (13,13)-(788,438)
//	InnerRect(outer, 3).Inset(10)     (23,23)-(778,428)
//
// The last rectangle is where text must fit to stay clear of the border.
//
// # Color Representation
//
// Colors are configured as hex strings ("#RRGGBB" or "#RGB") and parsed with
// go-colorful. Sampled colors are reported as hex, 8-bit RGB and HSL.
// Distance uses CIEDE2000, which tracks perceived difference better than RGB
// distance and backs the theme's low-contrast warning.
//
// # Ink and Margins
//
// InkBounds and MeasureMargins treat any pixel that differs from the
// background as ink. They work on the rendered pixels, independent of the
// layout arithmetic, and are used to confirm that text is centered.
//
// # Determinism
//
// Every function here is a pure function of its inputs. EncodePNG produces
// identical bytes for identical pixel buffers, which lets callers compare
// renders byte for byte.
package imaging
