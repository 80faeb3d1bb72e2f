//go:build !cgo

package ocr

import "context"

// Tesseract is a placeholder engine for builds without cgo.
type Tesseract struct {
	tessdata string
}

// NewTesseract creates an engine that always reports ErrUnavailable.
func NewTesseract(tessdata string) *Tesseract {
	return &Tesseract{tessdata: tessdata}
}

// Recognize implements Engine.
func (t *Tesseract) Recognize(context.Context, []byte, string) (*Recognition, error) {
	return nil, ErrUnavailable
}

// Info reports the OCR backend.
func (t *Tesseract) Info() Info {
	return Info{
		Backend: "none",
		Error:   ErrUnavailable.Error(),
	}
}
