// Package typeset turns text in an Indic script into positioned, rasterized
// glyphs.
//
// Fonts are resolved per language profile from a single directory and parsed
// once. Text is NFC-normalized and shaped with the go-text HarfBuzz port, which
// applies the script's reordering, conjunct and mark-positioning rules. A
// shaping-unaware path (one glyph per codepoint, advancing left to right)
// produces broken output for these scripts, so every measurement and every
// drawn pixel here comes from the shaped glyph run.
//
// # Coordinates
//
// A Line's Ink rectangle is relative to the pen origin on the baseline with Y
// growing downward, matching image.Image coordinates. Sizes are pixels per
// em; at the 72 DPI used throughout, points and pixels coincide.
package typeset
