package infographic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ironsheep/indic-infographic-mcp/internal/languages"
	"github.com/ironsheep/indic-infographic-mcp/internal/logging"
	"github.com/ironsheep/indic-infographic-mcp/internal/translate"
	"github.com/ironsheep/indic-infographic-mcp/internal/typeset"
)

// GenerateRequest is one user action. Zero canvas fields take the
// generator's defaults.
type GenerateRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Canvas
}

// Generation is the result of Generate.
type Generation struct {
	Source     string `json:"source"`
	Translated string `json:"translated"`
	*Rendition
}

// Generator runs the translate-then-render pipeline.
type Generator struct {
	translator translate.Translator
	renderer   *Renderer
	canvas     Canvas
	log        *slog.Logger
}

// NewGenerator creates a generator. canvas supplies defaults for requests
// that leave geometry unset.
func NewGenerator(tr translate.Translator, r *Renderer, canvas Canvas) *Generator {
	return &Generator{
		translator: tr,
		renderer:   r,
		canvas:     canvas.withDefaults(DefaultCanvas),
		log:        logging.For(logging.ComponentRenderer),
	}
}

// Renderer returns the generator's renderer.
func (g *Generator) Renderer() *Renderer {
	return g.renderer
}

// Generate looks up the language, resolves its font, translates the text
// and renders it. Any failure aborts the remaining steps.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (*Generation, error) {
	profile, canvas, err := g.prepare(req)
	if err != nil {
		return nil, err
	}

	translated, err := g.translate(ctx, profile, req.Text)
	if err != nil {
		return nil, err
	}

	rr, err := NewRenderRequest(translated, profile, canvas)
	if err != nil {
		return nil, err
	}
	rend, err := g.renderer.Render(rr)
	if err != nil {
		return nil, err
	}

	return &Generation{
		Source:     typeset.Normalize(req.Text),
		Translated: rr.Text(),
		Rendition:  rend,
	}, nil
}

// Render renders text that is already in the target language.
func (g *Generator) Render(req GenerateRequest) (*Rendition, error) {
	profile, canvas, err := g.prepare(req)
	if err != nil {
		return nil, err
	}
	rr, err := NewRenderRequest(req.Text, profile, canvas)
	if err != nil {
		return nil, err
	}
	return g.renderer.Render(rr)
}

// Translate looks up language and translates text into it without
// rendering.
func (g *Generator) Translate(ctx context.Context, text, language string) (languages.Profile, string, error) {
	profile, err := languages.Lookup(language)
	if err != nil {
		return languages.Profile{}, "", err
	}
	if typeset.Normalize(text) == "" {
		return languages.Profile{}, "", fmt.Errorf("%w: text is empty", ErrInvalidRequest)
	}
	out, err := g.translate(ctx, profile, text)
	if err != nil {
		return languages.Profile{}, "", err
	}
	return profile, out, nil
}

// prepare runs every check that does not need the translation, so a bad
// request never reaches the translator.
func (g *Generator) prepare(req GenerateRequest) (languages.Profile, Canvas, error) {
	profile, err := languages.Lookup(req.Language)
	if err != nil {
		return languages.Profile{}, Canvas{}, err
	}

	canvas := req.Canvas.withDefaults(g.canvas)
	if _, err := NewRenderRequest(req.Text, profile, canvas); err != nil {
		return languages.Profile{}, Canvas{}, err
	}
	if g.renderer.TextArea(canvas.Width, canvas.Height).Empty() {
		return languages.Profile{}, Canvas{}, fmt.Errorf("%w: canvas %dx%d leaves no room for text inside the border",
			ErrInvalidRequest, canvas.Width, canvas.Height)
	}

	if _, err := g.renderer.Fonts().Resolve(profile); err != nil {
		var fnf *typeset.FontNotFoundError
		if errors.As(err, &fnf) {
			g.log.Warn("font missing", "language", profile.Name, "path", fnf.Path)
		}
		return languages.Profile{}, Canvas{}, err
	}
	return profile, canvas, nil
}

func (g *Generator) translate(ctx context.Context, profile languages.Profile, text string) (string, error) {
	start := time.Now()
	out, err := g.translator.Translate(ctx, typeset.Normalize(text), profile.Code)
	if err != nil {
		g.log.Error("translation failed", "language", profile.Name, "error", err)
		if !errors.Is(err, translate.ErrTranslation) {
			err = fmt.Errorf("%w: %v", translate.ErrTranslation, err)
		}
		return "", err
	}
	if typeset.Normalize(out) == "" {
		return "", fmt.Errorf("%w: empty translation", translate.ErrTranslation)
	}
	g.log.Debug("translation complete", "language", profile.Name, "duration", time.Since(start))
	return out, nil
}
