// Package translate turns English text into one of the supported Indic
// languages. The translation model is an opaque service; this package only
// speaks its wire contract.
package translate

import (
	"context"
	"errors"
)

// ErrTranslation wraps every failure to obtain a translation.
var ErrTranslation = errors.New("translation failed")

// Translator translates English text into the language with the given
// two-letter code.
type Translator interface {
	Translate(ctx context.Context, text, code string) (string, error)
}

// Passthrough returns its input unchanged. It serves text that is already
// written in the target script.
type Passthrough struct{}

// Translate implements Translator.
func (Passthrough) Translate(_ context.Context, text, _ string) (string, error) {
	return text, nil
}
