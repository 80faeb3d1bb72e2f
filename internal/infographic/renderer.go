package infographic

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/ironsheep/indic-infographic-mcp/internal/imaging"
	"github.com/ironsheep/indic-infographic-mcp/internal/logging"
	"github.com/ironsheep/indic-infographic-mcp/internal/typeset"
)

// Layout records where and how the text was placed.
type Layout struct {
	RequestedFontSize int                 `json:"requested_font_size"`
	FontSize          int                 `json:"font_size"`
	X                 int                 `json:"x"`
	Y                 int                 `json:"y"`
	TextBox           typeset.BoundingBox `json:"text_box"`
	GlyphCount        int                 `json:"glyph_count"`
	Shrunk            bool                `json:"shrunk"`

	// Overflow is set when the text box does not fit inside the border
	// padding at the effective size. Clipped is set when it also extends past
	// the canvas edges, so part of it is cut off.
	Overflow bool `json:"overflow"`
	Clipped  bool `json:"clipped"`

	Margins imaging.Margins `json:"margins"`
}

// Composition is a composed canvas before encoding.
type Composition struct {
	Image    *image.NRGBA
	Layout   Layout
	Coverage typeset.Coverage
}

// Rendition is a finished infographic. It belongs to the caller.
type Rendition struct {
	ID       string       `json:"id"`
	Language string       `json:"language"`
	Text     string       `json:"text"`
	Image    *image.NRGBA `json:"-"`
	PNG      []byte       `json:"-"`
	Filename string       `json:"filename"`
	MimeType string       `json:"mime_type"`
	Layout   Layout       `json:"layout"`
	Warnings []string     `json:"warnings,omitempty"`
}

// Renderer draws infographics with one font set and theme. Renders are
// serialized; a Renderer is safe for concurrent use.
type Renderer struct {
	mu    sync.Mutex
	fonts *typeset.FontSet
	theme Theme
	log   *slog.Logger
}

// NewRenderer creates a renderer.
func NewRenderer(fonts *typeset.FontSet, theme Theme) *Renderer {
	return &Renderer{
		fonts: fonts,
		theme: theme,
		log:   logging.For(logging.ComponentRenderer),
	}
}

// Fonts returns the renderer's font set.
func (r *Renderer) Fonts() *typeset.FontSet {
	return r.fonts
}

// Theme returns the renderer's theme.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// TextArea returns the region text must fit in to avoid the border: the
// border's inner area shrunk by the theme padding.
func (r *Renderer) TextArea(width, height int) image.Rectangle {
	outer := imaging.BorderRect(width, height, r.theme.BorderInset)
	return imaging.InnerRect(outer, r.theme.BorderWidth).Inset(r.theme.Padding)
}

// Compose draws the background, border and centered text of req.
func (r *Renderer) Compose(req RenderRequest) (*Composition, error) {
	profile := req.Profile()
	canvas := req.Canvas()
	if profile.FontFile == "" {
		return nil, fmt.Errorf("%w: request was not built with NewRenderRequest", ErrInvalidRequest)
	}

	area := r.TextArea(canvas.Width, canvas.Height)
	if area.Empty() {
		return nil, fmt.Errorf("%w: canvas %dx%d leaves no room inside the border",
			ErrInvalidRequest, canvas.Width, canvas.Height)
	}

	font, err := r.fonts.Resolve(profile)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	line, err := r.fit(req.Text(), font, canvas.FontSize, area)
	if err != nil {
		return nil, err
	}
	box := line.Bounds()
	cov := typeset.CheckCoverage(req.Text(), font)
	if !cov.Complete() {
		r.log.Warn("text not fully covered by font",
			"language", profile.Name,
			"missing", len(cov.Missing),
			"foreign", len(cov.Foreign))
	}

	img := imaging.NewCanvas(canvas.Width, canvas.Height, r.theme.Background)
	outer := imaging.BorderRect(canvas.Width, canvas.Height, r.theme.BorderInset)
	imaging.DrawBorder(img, outer, r.theme.BorderWidth, r.theme.Border)

	pos := image.Pt((canvas.Width-box.Width)/2, (canvas.Height-box.Height)/2)
	line.DrawTo(img, pos, image.NewUniform(r.theme.Text))

	layout := Layout{
		RequestedFontSize: canvas.FontSize,
		FontSize:          line.Size,
		X:                 pos.X,
		Y:                 pos.Y,
		TextBox:           box,
		GlyphCount:        line.GlyphCount(),
		Shrunk:            line.Size < canvas.FontSize,
		Overflow:          !fits(box, area),
		Clipped:           box.Width > canvas.Width || box.Height > canvas.Height,
	}
	inner := imaging.InnerRect(outer, r.theme.BorderWidth)
	if m, ok := imaging.MeasureMargins(img, inner, r.theme.Background); ok {
		layout.Margins = m
	}

	r.log.Debug("composed",
		"language", profile.Name,
		"canvas", fmt.Sprintf("%dx%d", canvas.Width, canvas.Height),
		"font_size", line.Size,
		"glyphs", layout.GlyphCount,
		"x", pos.X,
		"y", pos.Y,
		"overflow", layout.Overflow,
		"clipped", layout.Clipped)

	return &Composition{
		Image:    img,
		Layout:   layout,
		Coverage: cov,
	}, nil
}

// Render composes req and encodes it as PNG.
func (r *Renderer) Render(req RenderRequest) (*Rendition, error) {
	comp, err := r.Compose(req)
	if err != nil {
		return nil, err
	}

	data, err := imaging.EncodePNG(comp.Image)
	if err != nil {
		r.log.Error("encoding failed", "language", req.Profile().Name, "error", err)
		return nil, err
	}

	profile := req.Profile()
	warnings := r.theme.Warnings()
	warnings = append(warnings, comp.Coverage.Warnings(profile.Name)...)
	if comp.Layout.Shrunk {
		warnings = append(warnings, fmt.Sprintf("text reduced from %dpx to %dpx to fit the border",
			comp.Layout.RequestedFontSize, comp.Layout.FontSize))
	}
	switch l := comp.Layout; {
	case l.Clipped:
		warnings = append(warnings, fmt.Sprintf("text is %dx%d at %dpx, larger than the %dx%d canvas, and was clipped",
			l.TextBox.Width, l.TextBox.Height, l.FontSize, req.Canvas().Width, req.Canvas().Height))
	case l.Overflow:
		warnings = append(warnings, fmt.Sprintf("text is %dx%d at %dpx and runs into the border padding",
			l.TextBox.Width, l.TextBox.Height, l.FontSize))
	}

	rend := &Rendition{
		ID:       uuid.NewString(),
		Language: profile.Name,
		Text:     req.Text(),
		Image:    comp.Image,
		PNG:      data,
		Filename: profile.DownloadName(),
		MimeType: imaging.MimeTypePNG,
		Layout:   comp.Layout,
		Warnings: warnings,
	}
	r.log.Info("rendered",
		"id", rend.ID,
		"language", profile.Name,
		"bytes", len(data),
		"font_size", comp.Layout.FontSize,
		"warnings", len(warnings))
	return rend, nil
}

// fit measures text at size, shrinking it until the ink box fits area or the
// theme minimum is reached, and shapes it at the chosen size. The minimum
// never exceeds the requested size.
func (r *Renderer) fit(text string, font *typeset.Font, size int, area image.Rectangle) (*typeset.Line, error) {
	box, err := typeset.MeasureText(text, font, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	minSize := min(size, r.theme.MinFontSize)
	for !fits(box, area) && size > minSize {
		ratio := math.Min(
			float64(area.Dx())/float64(box.Width),
			float64(area.Dy())/float64(box.Height),
		)
		next := int(math.Floor(float64(size) * ratio))
		size = max(min(next, size-1), minSize)

		if box, err = typeset.MeasureText(text, font, size); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}

	line, err := typeset.Shape(text, font, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return line, nil
}

func fits(box typeset.BoundingBox, area image.Rectangle) bool {
	return box.Width <= area.Dx() && box.Height <= area.Dy()
}
