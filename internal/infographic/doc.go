// Package infographic composes translated text onto a bordered canvas and
// encodes the result as PNG.
//
// A Renderer owns the font set and theme and turns a validated RenderRequest
// into a Rendition. A Generator sits in front of it and runs the whole
// pipeline for one user action: language lookup, font resolution,
// translation, rendering. Each stage aborts the action on failure, and the
// font is resolved before the translator is called so a missing font never
// costs a translation.
//
// Text is centered by its ink box:
//
//	x = (canvasWidth - textWidth) / 2
//	y = (canvasHeight - textHeight) / 2
//
// Text that does not fit inside the border is shrunk toward the theme's
// minimum font size. At that size it may still run into the border padding
// (Overflow) or, on very small canvases, past the canvas edges (Clipped).
package infographic
