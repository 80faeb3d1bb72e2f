package infographic

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/ironsheep/indic-infographic-mcp/internal/languages"
	"github.com/ironsheep/indic-infographic-mcp/internal/typeset"
)

// newTestFonts writes Go Regular under the font file name of each named
// language. With no names every language gets a font.
func newTestFonts(t *testing.T, names ...string) *typeset.FontSet {
	t.Helper()
	dir := t.TempDir()
	profiles := languages.All()
	if len(names) > 0 {
		profiles = profiles[:0]
		for _, n := range names {
			profiles = append(profiles, mustProfile(t, n))
		}
	}
	for _, p := range profiles {
		if err := os.WriteFile(filepath.Join(dir, p.FontFile), goregular.TTF, 0o644); err != nil {
			t.Fatalf("failed to write test font: %v", err)
		}
	}
	return typeset.NewFontSet(dir)
}

func newTestRenderer(t *testing.T, names ...string) *Renderer {
	t.Helper()
	return NewRenderer(newTestFonts(t, names...), DefaultTheme())
}

func mustProfile(t *testing.T, name string) languages.Profile {
	t.Helper()
	p, err := languages.Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", name, err)
	}
	return p
}

func mustRequest(t *testing.T, text, lang string, canvas Canvas) RenderRequest {
	t.Helper()
	req, err := NewRenderRequest(text, mustProfile(t, lang), canvas)
	if err != nil {
		t.Fatalf("NewRenderRequest: %v", err)
	}
	return req
}

// countingTranslator records calls and returns a fixed answer.
type countingTranslator struct {
	mu     sync.Mutex
	calls  int
	codes  []string
	answer string
	err    error
}

func (c *countingTranslator) Translate(_ context.Context, text, code string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.codes = append(c.codes, code)
	if c.err != nil {
		return "", c.err
	}
	if c.answer != "" {
		return c.answer, nil
	}
	return text, nil
}

func (c *countingTranslator) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// newDevanagariRenderer renders Hindi with the Noto Sans Devanagari font
// kept in the typeset testdata.
func newDevanagariRenderer(t *testing.T) *Renderer {
	t.Helper()
	return NewRenderer(typeset.NewFontSet(filepath.Join("..", "typeset", "testdata")), DefaultTheme())
}
