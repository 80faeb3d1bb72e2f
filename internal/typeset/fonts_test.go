package typeset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/ironsheep/indic-infographic-mcp/internal/languages"
)

// newTestFontSet writes the Go Regular font under each profile's file name.
// Go Regular has no Indic glyphs but is a valid TrueType font, which is all
// geometry tests need.
func newTestFontSet(t *testing.T, profiles ...languages.Profile) *FontSet {
	t.Helper()
	dir := t.TempDir()
	for _, p := range profiles {
		if err := os.WriteFile(filepath.Join(dir, p.FontFile), goregular.TTF, 0o644); err != nil {
			t.Fatalf("failed to write test font: %v", err)
		}
	}
	return NewFontSet(dir)
}

func mustProfile(t *testing.T, name string) languages.Profile {
	t.Helper()
	p, err := languages.Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", name, err)
	}
	return p
}

func mustFont(t *testing.T, name string) *Font {
	t.Helper()
	p := mustProfile(t, name)
	f, err := newTestFontSet(t, p).Resolve(p)
	if err != nil {
		t.Fatalf("Resolve(%s): %v", name, err)
	}
	return f
}

func TestResolve_AllLanguagesPresent(t *testing.T) {
	profiles := languages.All()
	set := newTestFontSet(t, profiles...)

	for _, p := range profiles {
		t.Run(p.Name, func(t *testing.T) {
			f, err := set.Resolve(p)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if f.Profile.Name != p.Name {
				t.Errorf("Profile: got %s, want %s", f.Profile.Name, p.Name)
			}
			if f.face == nil {
				t.Error("Face should not be nil")
			}
		})
	}
}

func TestResolve_AllLanguagesMissing(t *testing.T) {
	set := NewFontSet(t.TempDir())

	for _, p := range languages.All() {
		t.Run(p.Name, func(t *testing.T) {
			f, err := set.Resolve(p)
			if f != nil {
				t.Error("Resolve should not return a font when the file is missing")
			}
			if !errors.Is(err, ErrFontNotFound) {
				t.Fatalf("got %v, want ErrFontNotFound", err)
			}

			var nf *FontNotFoundError
			if !errors.As(err, &nf) {
				t.Fatalf("error should be a *FontNotFoundError, got %T", err)
			}
			if nf.Language != p.Name {
				t.Errorf("Language: got %s, want %s", nf.Language, p.Name)
			}
			if !strings.HasSuffix(nf.Path, p.FontFile) {
				t.Errorf("Path %s should end with %s", nf.Path, p.FontFile)
			}
			if !strings.Contains(nf.Remediation(), p.FontFile) {
				t.Errorf("Remediation should name the font file: %s", nf.Remediation())
			}
		})
	}
}

func TestResolve_Cached(t *testing.T) {
	p := mustProfile(t, "Hindi")
	set := newTestFontSet(t, p)

	first, err := set.Resolve(p)
	if err != nil {
		t.Fatal(err)
	}
	second, err := set.Resolve(p)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("second Resolve should return the cached font")
	}
}

func TestResolve_PicksUpLateFont(t *testing.T) {
	p := mustProfile(t, "Tamil")
	set := NewFontSet(t.TempDir())

	if _, err := set.Resolve(p); !errors.Is(err, ErrFontNotFound) {
		t.Fatalf("got %v, want ErrFontNotFound", err)
	}

	if err := os.WriteFile(set.Path(p), goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := set.Resolve(p); err != nil {
		t.Errorf("Resolve after adding the font failed: %v", err)
	}
}

func TestResolve_CorruptFont(t *testing.T) {
	p := mustProfile(t, "Kannada")
	set := NewFontSet(t.TempDir())
	if err := os.WriteFile(set.Path(p), []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := set.Resolve(p)
	if err == nil {
		t.Fatal("Resolve should fail for a corrupt font")
	}
	if errors.Is(err, ErrFontNotFound) {
		t.Error("a corrupt font is not a missing font")
	}
}

func TestStatus(t *testing.T) {
	telugu := mustProfile(t, "Telugu")
	bengali := mustProfile(t, "Bengali")
	set := newTestFontSet(t, telugu)

	status := set.Status([]languages.Profile{telugu, bengali})
	if len(status) != 2 {
		t.Fatalf("Status: got %d entries, want 2", len(status))
	}
	if !status[0].Available || status[0].Error != "" {
		t.Errorf("Telugu should be available: %+v", status[0])
	}
	if status[1].Available || status[1].Error == "" {
		t.Errorf("Bengali should be unavailable with an error: %+v", status[1])
	}
}
