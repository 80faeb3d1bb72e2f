package typeset

import (
	"fmt"
	"unicode"

	"github.com/go-text/typesetting/language"
)

// Coverage lists the characters of a text that will not render as intended
// with a given font and script.
type Coverage struct {
	// Missing holds characters the font has no glyph for. They render as the
	// font's .notdef box.
	Missing []string `json:"missing,omitempty"`

	// Foreign holds letters from a script other than the profile's, such as
	// Latin words the translator left untranslated.
	Foreign []string `json:"foreign,omitempty"`
}

// Complete reports whether nothing was flagged.
func (c Coverage) Complete() bool {
	return len(c.Missing) == 0 && len(c.Foreign) == 0
}

// Warnings renders the findings as user-facing messages.
func (c Coverage) Warnings(lang string) []string {
	var out []string
	if len(c.Missing) > 0 {
		out = append(out, fmt.Sprintf("%s font has no glyphs for %q", lang, c.Missing))
	}
	if len(c.Foreign) > 0 {
		out = append(out, fmt.Sprintf("text contains characters outside the %s script: %q", lang, c.Foreign))
	}
	return out
}

// CheckCoverage inspects text against f and its profile's script. Each
// character is reported at most once, in order of first appearance.
func CheckCoverage(text string, f *Font) Coverage {
	var cov Coverage
	seen := make(map[rune]bool)
	for _, r := range Normalize(text) {
		if seen[r] || unicode.IsSpace(r) {
			continue
		}
		seen[r] = true

		if !f.HasGlyph(r) {
			cov.Missing = append(cov.Missing, string(r))
		}
		if unicode.IsLetter(r) {
			switch language.LookupScript(r) {
			case f.Profile.Script, language.Common, language.Inherited:
			default:
				cov.Foreign = append(cov.Foreign, string(r))
			}
		}
	}
	return cov
}
