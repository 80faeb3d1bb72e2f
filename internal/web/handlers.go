package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ironsheep/indic-infographic-mcp/internal/imaging"
	"github.com/ironsheep/indic-infographic-mcp/internal/infographic"
	"github.com/ironsheep/indic-infographic-mcp/internal/languages"
	"github.com/ironsheep/indic-infographic-mcp/internal/translate"
	"github.com/ironsheep/indic-infographic-mcp/internal/typeset"
)

type handlers struct {
	generator *infographic.Generator
	version   string
	log       *slog.Logger
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version})
}

type languageJSON struct {
	Name          string `json:"name"`
	Code          string `json:"code"`
	Script        string `json:"script"`
	FontAvailable bool   `json:"font_available"`
}

func (h *handlers) languages(c *gin.Context) {
	profiles := languages.All()
	status := h.generator.Renderer().Fonts().Status(profiles)

	out := make([]languageJSON, len(profiles))
	for i, p := range profiles {
		out[i] = languageJSON{
			Name:          p.Name,
			Code:          p.Code,
			Script:        p.ScriptTag,
			FontAvailable: status[i].Available,
		}
	}
	c.JSON(http.StatusOK, gin.H{"languages": out})
}

type translateRequest struct {
	Text     string `json:"text" binding:"required"`
	Language string `json:"language" binding:"required"`
}

func (h *handlers) translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, out, err := h.generator.Translate(c.Request.Context(), req.Text, req.Language)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"language":   p.Name,
		"code":       p.Code,
		"source":     typeset.Normalize(req.Text),
		"translated": out,
	})
}

type infographicRequest struct {
	Text     string `json:"text" binding:"required"`
	Language string `json:"language" binding:"required"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	FontSize int    `json:"font_size"`

	// Translated skips translation for text already in the target language.
	Translated bool `json:"translated"`
}

// infographic returns the PNG body. The download filename is set unless the
// query asks for inline display. Layout details travel in headers.
func (h *handlers) infographic(c *gin.Context) {
	var req infographicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gr := infographic.GenerateRequest{
		Text:     req.Text,
		Language: req.Language,
		Canvas:   infographic.Canvas{Width: req.Width, Height: req.Height, FontSize: req.FontSize},
	}

	var (
		rend *infographic.Rendition
		err  error
	)
	if req.Translated {
		rend, err = h.generator.Render(gr)
	} else {
		var gen *infographic.Generation
		if gen, err = h.generator.Generate(c.Request.Context(), gr); err == nil {
			rend = gen.Rendition
		}
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	disposition := "attachment"
	if inline, _ := strconv.ParseBool(c.Query("inline")); inline {
		disposition = "inline"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, rend.Filename))
	c.Header("X-Infographic-ID", rend.ID)
	c.Header("X-Infographic-Font-Size", strconv.Itoa(rend.Layout.FontSize))
	if rend.Layout.Overflow {
		c.Header("X-Infographic-Overflow", "true")
	}
	if rend.Layout.Clipped {
		c.Header("X-Infographic-Clipped", "true")
	}
	c.Data(http.StatusOK, imaging.MimeTypePNG, rend.PNG)
}

// fail maps pipeline errors to HTTP statuses.
func (h *handlers) fail(c *gin.Context, err error) {
	status, body := errorResponse(err)
	log := requestLog(c, h.log)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "status", status, "error", err)
	} else {
		log.Warn("request rejected", "status", status, "error", err)
	}
	c.JSON(status, body)
}

func errorResponse(err error) (int, gin.H) {
	var fnf *typeset.FontNotFoundError
	switch {
	case errors.Is(err, languages.ErrUnsupportedLanguage):
		return http.StatusBadRequest, gin.H{"error": err.Error(), "supported": languages.Names()}
	case errors.As(err, &fnf):
		return http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "remediation": fnf.Remediation()}
	case errors.Is(err, infographic.ErrInvalidRequest):
		return http.StatusBadRequest, gin.H{"error": err.Error()}
	case errors.Is(err, translate.ErrTranslation):
		return http.StatusBadGateway, gin.H{"error": "translation failed"}
	case errors.Is(err, imaging.ErrEncoding):
		return http.StatusInternalServerError, gin.H{"error": "failed to encode image"}
	default:
		return http.StatusInternalServerError, gin.H{"error": "internal error"}
	}
}
