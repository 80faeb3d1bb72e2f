//go:build cgo

package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract recognizes text through the native Tesseract library.
type Tesseract struct {
	tessdata string
}

// NewTesseract creates an engine. An empty tessdata uses the system's
// default training data location.
func NewTesseract(tessdata string) *Tesseract {
	return &Tesseract{tessdata: tessdata}
}

// Recognize implements Engine. A fresh client is used per call; gosseract
// clients are not safe for concurrent use.
func (t *Tesseract) Recognize(ctx context.Context, png []byte, lang string) (*Recognition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if t.tessdata != "" {
		if err := client.SetTessdataPrefix(t.tessdata); err != nil {
			return nil, fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}
	if err := client.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(png); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	rec := &Recognition{Text: strings.TrimSpace(text), Words: []Word{}}

	// Word boxes are optional; some builds fail to produce them.
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return rec, nil
	}
	for _, box := range boxes {
		if strings.TrimSpace(box.Word) == "" {
			continue
		}
		rec.Words = append(rec.Words, Word{
			Text:       box.Word,
			Confidence: box.Confidence / 100.0,
			Bounds: Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		})
	}
	return rec, nil
}

// Info reports the OCR backend.
func (t *Tesseract) Info() Info {
	client := gosseract.NewClient()
	defer client.Close()
	return Info{
		Available: true,
		Backend:   "gosseract",
		Version:   client.Version(),
		Tessdata:  t.tessdata,
	}
}
