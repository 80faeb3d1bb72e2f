package ocr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/ironsheep/indic-infographic-mcp/internal/languages"
	"github.com/ironsheep/indic-infographic-mcp/internal/logging"
	"github.com/ironsheep/indic-infographic-mcp/internal/typeset"
)

// ErrUnavailable is returned when the binary was built without Tesseract.
var ErrUnavailable = errors.New("OCR is not available in this build")

// DefaultThreshold is the similarity at or above which a verification passes.
const DefaultThreshold = 0.8

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Word is one recognized word with its location and confidence (0 to 1).
type Word struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Bounds     Bounds  `json:"bounds"`
}

// Recognition is the raw engine output.
type Recognition struct {
	Text  string `json:"text"`
	Words []Word `json:"words"`
}

// MeanConfidence averages word confidences. It is 0 with no words.
func (r *Recognition) MeanConfidence() float64 {
	if len(r.Words) == 0 {
		return 0
	}
	var sum float64
	for _, w := range r.Words {
		sum += w.Confidence
	}
	return sum / float64(len(r.Words))
}

// Engine recognizes text in a PNG using a Tesseract language code.
type Engine interface {
	Recognize(ctx context.Context, png []byte, lang string) (*Recognition, error)
}

// Verification compares what was drawn with what was read back.
type Verification struct {
	Language   string  `json:"language"`
	Expected   string  `json:"expected"`
	Recognized string  `json:"recognized"`
	Similarity float64 `json:"similarity"`
	Confidence float64 `json:"confidence"`
	Words      []Word  `json:"words"`
	Passed     bool    `json:"passed"`
}

// Verifier checks rendered infographics with an Engine.
type Verifier struct {
	engine    Engine
	threshold float64
	log       *slog.Logger
}

// NewVerifier creates a verifier. A threshold outside (0, 1] falls back to
// DefaultThreshold.
func NewVerifier(engine Engine, threshold float64) *Verifier {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Verifier{
		engine:    engine,
		threshold: threshold,
		log:       logging.For(logging.ComponentOCR),
	}
}

// Verify reads png in the profile's OCR language and scores it against
// expected.
func (v *Verifier) Verify(ctx context.Context, png []byte, profile languages.Profile, expected string) (*Verification, error) {
	if len(png) == 0 {
		return nil, fmt.Errorf("no image to verify")
	}

	rec, err := v.engine.Recognize(ctx, png, profile.OCRLanguage)
	if err != nil {
		return nil, fmt.Errorf("recognition failed for %s: %w", profile.Name, err)
	}

	result := &Verification{
		Language:   profile.Name,
		Expected:   typeset.Normalize(expected),
		Recognized: typeset.Normalize(rec.Text),
		Similarity: Similarity(expected, rec.Text),
		Confidence: rec.MeanConfidence(),
		Words:      rec.Words,
	}
	result.Passed = result.Similarity >= v.threshold

	v.log.Info("verified",
		"language", profile.Name,
		"similarity", fmt.Sprintf("%.3f", result.Similarity),
		"confidence", fmt.Sprintf("%.3f", result.Confidence),
		"passed", result.Passed)
	return result, nil
}

// Similarity scores two strings between 0 and 1, ignoring whitespace and
// Unicode normalization differences.
func Similarity(a, b string) float64 {
	ra := []rune(squeeze(a))
	rb := []rune(squeeze(b))
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1
	}
	return 1 - float64(editDistance(ra, rb))/float64(longest)
}

func squeeze(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, typeset.Normalize(s))
}

// editDistance is the Levenshtein distance over runes.
func editDistance(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
