package infographic

import (
	"fmt"

	"github.com/ironsheep/indic-infographic-mcp/internal/languages"
	"github.com/ironsheep/indic-infographic-mcp/internal/typeset"
)

// MaxCanvasSide bounds either canvas dimension.
const MaxCanvasSide = 8192

// Canvas is the geometry of a render.
type Canvas struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	FontSize int `json:"font_size"`
}

// DefaultCanvas is 800x450 with 32px text.
var DefaultCanvas = Canvas{Width: 800, Height: 450, FontSize: 32}

// withDefaults fills zero fields from def.
func (c Canvas) withDefaults(def Canvas) Canvas {
	if c.Width == 0 {
		c.Width = def.Width
	}
	if c.Height == 0 {
		c.Height = def.Height
	}
	if c.FontSize == 0 {
		c.FontSize = def.FontSize
	}
	return c
}

// RenderRequest is validated input for one render. Build it with
// NewRenderRequest; the zero value is not usable.
type RenderRequest struct {
	text    string
	profile languages.Profile
	canvas  Canvas
}

// NewRenderRequest validates its arguments. Text is normalized to NFC with
// whitespace collapsed.
func NewRenderRequest(text string, profile languages.Profile, canvas Canvas) (RenderRequest, error) {
	text = typeset.Normalize(text)
	if text == "" {
		return RenderRequest{}, fmt.Errorf("%w: text is empty", ErrInvalidRequest)
	}
	if profile.FontFile == "" {
		return RenderRequest{}, fmt.Errorf("%w: no language profile", ErrInvalidRequest)
	}
	if canvas.Width <= 0 || canvas.Height <= 0 {
		return RenderRequest{}, fmt.Errorf("%w: canvas %dx%d must be positive", ErrInvalidRequest, canvas.Width, canvas.Height)
	}
	if canvas.Width > MaxCanvasSide || canvas.Height > MaxCanvasSide {
		return RenderRequest{}, fmt.Errorf("%w: canvas %dx%d exceeds %d pixels per side",
			ErrInvalidRequest, canvas.Width, canvas.Height, MaxCanvasSide)
	}
	if canvas.FontSize <= 0 {
		return RenderRequest{}, fmt.Errorf("%w: font size %d must be positive", ErrInvalidRequest, canvas.FontSize)
	}
	return RenderRequest{text: text, profile: profile, canvas: canvas}, nil
}

// Text returns the normalized text.
func (r RenderRequest) Text() string { return r.text }

// Profile returns the target language profile.
func (r RenderRequest) Profile() languages.Profile { return r.profile }

// Canvas returns the requested geometry.
func (r RenderRequest) Canvas() Canvas { return r.canvas }
