// Package languages holds the static table of supported target languages.
//
// Each Profile ties a display name to the code the translation model expects,
// the script used for shaping, the font file that covers that script, and the
// Tesseract language used to verify rendered output.
package languages

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-text/typesetting/language"
	textlang "golang.org/x/text/language"
)

// ErrUnsupportedLanguage is returned by Lookup for names outside the table.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Profile describes one supported target language.
type Profile struct {
	// Name is the display name and lookup key, e.g. "Telugu".
	Name string `json:"name"`

	// Code is the two-letter code passed to the translator, e.g. "te".
	Code string `json:"code"`

	// ScriptTag is the ISO 15924 code of the writing system, e.g. "Telu".
	ScriptTag string `json:"script"`

	// FontFile is the font file name looked up in the font directory.
	FontFile string `json:"font_file"`

	// OCRLanguage is the Tesseract traineddata name, e.g. "tel".
	OCRLanguage string `json:"ocr_language"`

	// Script is the shaping script matching ScriptTag.
	Script language.Script `json:"-"`
}

// Language returns the shaping language tag for the profile.
func (p Profile) Language() language.Language {
	return language.NewLanguage(p.Code)
}

// DownloadName returns the file name offered for a rendered infographic.
func (p Profile) DownloadName() string {
	return p.Name + "_infographic.png"
}

var profiles = []Profile{
	{Name: "Telugu", Code: "te", ScriptTag: "Telu", FontFile: "NotoSansTelugu-Regular.ttf", OCRLanguage: "tel", Script: language.Telugu},
	{Name: "Hindi", Code: "hi", ScriptTag: "Deva", FontFile: "NotoSansDevanagari-Regular.ttf", OCRLanguage: "hin", Script: language.Devanagari},
	{Name: "Tamil", Code: "ta", ScriptTag: "Taml", FontFile: "NotoSansTamil-Regular.ttf", OCRLanguage: "tam", Script: language.Tamil},
	{Name: "Kannada", Code: "kn", ScriptTag: "Knda", FontFile: "NotoSansKannada-Regular.ttf", OCRLanguage: "kan", Script: language.Kannada},
	{Name: "Malayalam", Code: "ml", ScriptTag: "Mlym", FontFile: "NotoSansMalayalam-Regular.ttf", OCRLanguage: "mal", Script: language.Malayalam},
	{Name: "Bengali", Code: "bn", ScriptTag: "Beng", FontFile: "NotoSansBengali-Regular.ttf", OCRLanguage: "ben", Script: language.Bengali},
}

// All returns a copy of the profile table in display order.
func All() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}

// Names returns the display names in table order.
func Names() []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return names
}

// Lookup finds a profile by display name or translation code, ignoring case
// and surrounding whitespace.
func Lookup(name string) (Profile, error) {
	key := strings.TrimSpace(name)
	for _, p := range profiles {
		if strings.EqualFold(p.Name, key) || strings.EqualFold(p.Code, key) {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedLanguage, name, strings.Join(Names(), ", "))
}

// Validate checks a profile table for duplicate keys and for codes and
// scripts that do not agree with CLDR likely-subtag data.
func Validate(table []Profile) error {
	if len(table) == 0 {
		return errors.New("languages: empty profile table")
	}

	seen := make(map[string]string)
	var errs []error
	for _, p := range table {
		for _, key := range []string{strings.ToLower(p.Name), strings.ToLower(p.Code)} {
			if other, dup := seen[key]; dup {
				errs = append(errs, fmt.Errorf("%s: key %q already used by %s", p.Name, key, other))
				continue
			}
			seen[key] = p.Name
		}

		if p.FontFile == "" {
			errs = append(errs, fmt.Errorf("%s: no font file", p.Name))
		}
		if p.OCRLanguage == "" {
			errs = append(errs, fmt.Errorf("%s: no OCR language", p.Name))
		}

		base, err := textlang.ParseBase(p.Code)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid language code %q: %w", p.Name, p.Code, err))
			continue
		}
		script, err := textlang.ParseScript(p.ScriptTag)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid script %q: %w", p.Name, p.ScriptTag, err))
			continue
		}
		tag, err := textlang.Compose(base)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.Name, err))
			continue
		}
		if likely, _ := tag.Script(); likely != script {
			errs = append(errs, fmt.Errorf("%s: script %s does not match %s for %q", p.Name, script, likely, p.Code))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("languages: %w", errors.Join(errs...))
	}
	return nil
}
