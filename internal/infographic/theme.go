package infographic

import (
	"fmt"
	"image/color"

	"github.com/ironsheep/indic-infographic-mcp/internal/config"
	"github.com/ironsheep/indic-infographic-mcp/internal/imaging"
)

// minContrast is the CIEDE2000 distance below which text is hard to read
// against the background.
const minContrast = 0.25

// Theme is the visual style applied to every infographic.
type Theme struct {
	Background color.NRGBA
	Border     color.NRGBA
	Text       color.NRGBA

	BorderInset int
	BorderWidth int
	Padding     int
	MinFontSize int
}

// DefaultTheme is AliceBlue background, gray border and black text.
func DefaultTheme() Theme {
	return Theme{
		Background:  color.NRGBA{R: 240, G: 248, B: 255, A: 255},
		Border:      color.NRGBA{R: 100, G: 100, B: 100, A: 255},
		Text:        color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		BorderInset: 10,
		BorderWidth: 3,
		Padding:     10,
		MinFontSize: 12,
	}
}

// NewTheme parses the colors of cfg.
func NewTheme(cfg config.ThemeConfig) (Theme, error) {
	var (
		t   Theme
		err error
	)
	if t.Background, err = imaging.ParseColor(cfg.Background); err != nil {
		return Theme{}, fmt.Errorf("background: %w", err)
	}
	if t.Border, err = imaging.ParseColor(cfg.Border); err != nil {
		return Theme{}, fmt.Errorf("border: %w", err)
	}
	if t.Text, err = imaging.ParseColor(cfg.Text); err != nil {
		return Theme{}, fmt.Errorf("text: %w", err)
	}
	t.BorderInset = cfg.BorderInset
	t.BorderWidth = cfg.BorderWidth
	t.Padding = cfg.Padding
	t.MinFontSize = max(1, cfg.MinFontSize)
	return t, nil
}

// Warnings reports style problems that do not prevent rendering.
func (t Theme) Warnings() []string {
	var out []string
	if d := imaging.Distance(t.Text, t.Background); d < minContrast {
		out = append(out, fmt.Sprintf("text color %s has low contrast against background %s (%.2f)",
			imaging.Hex(t.Text), imaging.Hex(t.Background), d))
	}
	return out
}
