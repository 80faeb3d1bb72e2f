package typeset

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-text/typesetting/font"

	"github.com/ironsheep/indic-infographic-mcp/internal/languages"
)

// ErrFontNotFound is matched by every *FontNotFoundError.
var ErrFontNotFound = errors.New("font not found")

// FontNotFoundError reports a font file missing from the font directory.
type FontNotFoundError struct {
	Language string
	Path     string
}

func (e *FontNotFoundError) Error() string {
	return fmt.Sprintf("font for %s not found at %s", e.Language, e.Path)
}

// Is lets errors.Is(err, ErrFontNotFound) match.
func (e *FontNotFoundError) Is(target error) bool {
	return target == ErrFontNotFound
}

// Remediation is the user-facing hint shown next to the error.
func (e *FontNotFoundError) Remediation() string {
	return fmt.Sprintf("Please ensure the required Noto Sans font file %s is in the %s folder.",
		filepath.Base(e.Path), filepath.Dir(e.Path))
}

// Font is a parsed font face bound to the profile it was resolved for.
type Font struct {
	Profile languages.Profile
	Path    string
	face    *font.Face
}

// HasGlyph reports whether the font maps r to a glyph.
func (f *Font) HasGlyph(r rune) bool {
	_, ok := f.face.NominalGlyph(r)
	return ok
}

// FontSet resolves language profiles to parsed fonts in one directory.
//
// Each file is parsed at most once; later Resolve calls return the cached
// handle. FontSet is safe for concurrent use.
type FontSet struct {
	dir   string
	mu    sync.RWMutex
	fonts map[string]*Font
}

// NewFontSet creates a font set rooted at dir. No files are read until
// Resolve is called.
func NewFontSet(dir string) *FontSet {
	return &FontSet{
		dir:   dir,
		fonts: make(map[string]*Font),
	}
}

// Dir returns the font directory.
func (s *FontSet) Dir() string {
	return s.dir
}

// Path returns where the font for p is expected.
func (s *FontSet) Path(p languages.Profile) string {
	return filepath.Join(s.dir, p.FontFile)
}

// Resolve returns the parsed font for p.
//
// A missing file yields a *FontNotFoundError. A file that exists but cannot be
// parsed yields a wrapped parse error. Failures are not cached, so a font
// dropped into the directory later is picked up on the next call.
func (s *FontSet) Resolve(p languages.Profile) (*Font, error) {
	path := s.Path(p)

	s.mu.RLock()
	if f, ok := s.fonts[path]; ok {
		s.mu.RUnlock()
		return f, nil
	}
	s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &FontNotFoundError{Language: p.Name, Path: path}
		}
		return nil, fmt.Errorf("failed to read font %s: %w", path, err)
	}

	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}

	f := &Font{Profile: p, Path: path, face: face}

	s.mu.Lock()
	if cached, ok := s.fonts[path]; ok {
		f = cached
	} else {
		s.fonts[path] = f
	}
	s.mu.Unlock()

	return f, nil
}

// FontStatus describes whether a profile's font can be used.
type FontStatus struct {
	Language  string `json:"language"`
	Path      string `json:"path"`
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

// Status resolves every profile and reports the outcome in table order.
func (s *FontSet) Status(profiles []languages.Profile) []FontStatus {
	out := make([]FontStatus, 0, len(profiles))
	for _, p := range profiles {
		st := FontStatus{Language: p.Name, Path: s.Path(p)}
		if _, err := s.Resolve(p); err != nil {
			st.Error = err.Error()
		} else {
			st.Available = true
		}
		out = append(out, st)
	}
	return out
}
