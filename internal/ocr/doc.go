// Package ocr reads rendered infographics back with Tesseract to confirm the
// text survived shaping and rasterization.
//
// # Prerequisites
//
// Tesseract and the language data for each Indic language must be installed:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-tel tesseract-ocr-hin ...
//   - macOS: brew install tesseract tesseract-lang
//
// The engine is only compiled with cgo. Without cgo, Tesseract.Recognize
// returns ErrUnavailable and Verify fails with it.
//
// # Scoring
//
// Verify compares recognized and expected text after NFC normalization with
// all whitespace removed. Similarity is one minus the rune-level edit
// distance divided by the longer length, so 1 means identical.
package ocr
