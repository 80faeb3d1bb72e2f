package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/ironsheep/indic-infographic-mcp/internal/detection"
	"github.com/ironsheep/indic-infographic-mcp/internal/imaging"
	"github.com/ironsheep/indic-infographic-mcp/internal/infographic"
	"github.com/ironsheep/indic-infographic-mcp/internal/languages"
	"github.com/ironsheep/indic-infographic-mcp/internal/ocr"
	"github.com/ironsheep/indic-infographic-mcp/internal/typeset"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "infographic_generate").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// imageContent is implemented by results that carry a picture. The picture
// is returned as an MCP image content item next to the JSON text.
type imageContent interface {
	contentImage() *imaging.EncodedImage
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [
//	    {"type": "text", "text": "<JSON result>"},
//	    {"type": "image", "data": "<base64>", "mimeType": "image/png"}
//	  ]
//	}
//
// The image item is present only for tools that produce one. Tool execution
// errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.log.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", describeError(err))
	}

	content := []map[string]interface{}{
		{
			"type": "text",
			"text": mustMarshalJSON(result),
		},
	}
	if ic, ok := result.(imageContent); ok {
		if img := ic.contentImage(); img != nil {
			content = append(content, map[string]interface{}{
				"type":     "image",
				"data":     img.ImageBase64,
				"mimeType": img.MimeType,
			})
		}
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": content,
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	case ToolLanguages:
		return s.handleLanguages()
	case ToolTranslate:
		return s.handleTranslate(ctx, args)
	case ToolRender:
		return s.handleRender(args)
	case ToolGenerate:
		return s.handleGenerate(ctx, args)
	case ToolVerify:
		return s.handleVerify(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// describeError renders err for the client, adding remediation for missing
// fonts.
func describeError(err error) string {
	var fnf *typeset.FontNotFoundError
	if errors.As(err, &fnf) {
		return fmt.Sprintf("%s. %s", err, fnf.Remediation())
	}
	return err.Error()
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Language Handlers ===

type languageInfo struct {
	Name          string `json:"name"`
	Code          string `json:"code"`
	Script        string `json:"script"`
	FontFile      string `json:"font_file"`
	FontPath      string `json:"font_path"`
	FontAvailable bool   `json:"font_available"`
	FontError     string `json:"font_error,omitempty"`
	OCRLanguage   string `json:"ocr_language"`
}

type languagesResult struct {
	Languages []languageInfo `json:"languages"`
	FontDir   string         `json:"font_dir"`
	OCR       ocr.Info       `json:"ocr"`
}

func (s *Server) handleLanguages() (interface{}, error) {
	fonts := s.generator.Renderer().Fonts()
	profiles := languages.All()
	status := fonts.Status(profiles)

	out := make([]languageInfo, len(profiles))
	for i, p := range profiles {
		out[i] = languageInfo{
			Name:          p.Name,
			Code:          p.Code,
			Script:        p.ScriptTag,
			FontFile:      p.FontFile,
			FontPath:      status[i].Path,
			FontAvailable: status[i].Available,
			FontError:     status[i].Error,
			OCRLanguage:   p.OCRLanguage,
		}
	}
	return &languagesResult{Languages: out, FontDir: fonts.Dir(), OCR: s.ocrInfo}, nil
}

type translateArgs struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type translateResult struct {
	Language   string `json:"language"`
	Code       string `json:"code"`
	Source     string `json:"source"`
	Translated string `json:"translated"`
}

func (s *Server) handleTranslate(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a translateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p, out, err := s.generator.Translate(ctx, a.Text, a.Language)
	if err != nil {
		return nil, err
	}
	return &translateResult{
		Language:   p.Name,
		Code:       p.Code,
		Source:     typeset.Normalize(a.Text),
		Translated: out,
	}, nil
}

// === Render Handlers ===

type renderArgs struct {
	Text         string  `json:"text"`
	Language     string  `json:"language"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	FontSize     int     `json:"font_size"`
	Save         bool    `json:"save"`
	PreviewScale float64 `json:"preview_scale"`
}

func (a renderArgs) request() infographic.GenerateRequest {
	return infographic.GenerateRequest{
		Text:     a.Text,
		Language: a.Language,
		Canvas: infographic.Canvas{
			Width:    a.Width,
			Height:   a.Height,
			FontSize: a.FontSize,
		},
	}
}

type renderResult struct {
	ID        string                `json:"id"`
	Language  string                `json:"language"`
	Source    string                `json:"source,omitempty"`
	Text      string                `json:"text"`
	Filename  string                `json:"filename"`
	SavedPath string                `json:"saved_path,omitempty"`
	Layout    infographic.Layout    `json:"layout"`
	Warnings  []string              `json:"warnings,omitempty"`
	Image     *imaging.EncodedImage `json:"image"`
	IsPreview bool                  `json:"is_preview,omitempty"`
}

func (r *renderResult) contentImage() *imaging.EncodedImage {
	return r.Image
}

func (s *Server) handleRender(args json.RawMessage) (interface{}, error) {
	var a renderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	rend, err := s.generator.Render(a.request())
	if err != nil {
		return nil, err
	}
	return s.renderOutput(rend, a)
}

func (s *Server) handleGenerate(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a renderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	gen, err := s.generator.Generate(ctx, a.request())
	if err != nil {
		return nil, err
	}
	out, err := s.renderOutput(gen.Rendition, a)
	if err != nil {
		return nil, err
	}
	out.Source = gen.Source
	return out, nil
}

// renderOutput saves and encodes a rendition as the tool result.
func (s *Server) renderOutput(rend *infographic.Rendition, a renderArgs) (*renderResult, error) {
	out := &renderResult{
		ID:       rend.ID,
		Language: rend.Language,
		Text:     rend.Text,
		Filename: rend.Filename,
		Layout:   rend.Layout,
		Warnings: rend.Warnings,
	}

	if a.Save {
		if s.outputDir == "" {
			return nil, fmt.Errorf("saving is disabled: no output directory configured")
		}
		path, err := imaging.SavePNG(s.outputDir, rend.Filename, rend.Image)
		if err != nil {
			return nil, err
		}
		out.SavedPath = path
	}

	b := rend.Image.Bounds()
	out.Image = imaging.NewEncodedImage(rend.PNG, b.Dx(), b.Dy())

	if a.PreviewScale != 0 && a.PreviewScale != 1 {
		small, err := imaging.Preview(rend.Image, a.PreviewScale)
		if err != nil {
			return nil, err
		}
		data, err := imaging.EncodePNG(small)
		if err != nil {
			return nil, err
		}
		sb := small.Bounds()
		out.Image = imaging.NewEncodedImage(data, sb.Dx(), sb.Dy())
		out.IsPreview = true
	}
	return out, nil
}

// === Verification Handlers ===

type verifyArgs struct {
	ImageBase64 string `json:"image_base64"`
	Path        string `json:"path"`
	Language    string `json:"language"`
	Expected    string `json:"expected"`
}

type borderCheck struct {
	Found    bool            `json:"found"`
	Expected image.Rectangle `json:"expected"`
	Detected image.Rectangle `json:"detected"`
	Color    string          `json:"color,omitempty"`
}

type marginCheck struct {
	InkFound bool            `json:"ink_found"`
	Margins  imaging.Margins `json:"margins"`
	Centered bool            `json:"centered"`
}

type verifyResult struct {
	Language   string               `json:"language"`
	Width      int                  `json:"width"`
	Height     int                  `json:"height"`
	Background *imaging.ColorResult `json:"background"`
	Border     borderCheck          `json:"border"`
	Text       marginCheck          `json:"text"`
	OCR        *ocr.Verification    `json:"ocr,omitempty"`
	OCRError   string               `json:"ocr_error,omitempty"`
}

// centerSlack is the largest margin imbalance reported as centered. Integer
// centering allows one pixel and antialiasing another.
const centerSlack = 2

func (s *Server) handleVerify(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a verifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	profile, err := languages.Lookup(a.Language)
	if err != nil {
		return nil, err
	}

	data, err := readImageArg(a)
	if err != nil {
		return nil, err
	}
	img, err := imaging.DecodePNG(data)
	if err != nil {
		return nil, err
	}

	theme := s.generator.Renderer().Theme()
	b := img.Bounds()
	out := &verifyResult{Language: profile.Name, Width: b.Dx(), Height: b.Dy()}

	if out.Background, err = imaging.SampleColor(img, b.Min.X, b.Min.Y); err != nil {
		return nil, err
	}

	outer := imaging.BorderRect(b.Dx(), b.Dy(), theme.BorderInset).Add(b.Min)
	out.Border.Expected = outer
	if f, ok := detection.FindBorder(img, outer, 1); ok {
		out.Border.Found = true
		out.Border.Detected = f.Bounds
		out.Border.Color = f.Color
	}

	inner := imaging.InnerRect(outer, theme.BorderWidth)
	if m, ok := imaging.MeasureMargins(img, inner, theme.Background); ok {
		out.Text.InkFound = true
		out.Text.Margins = m
		out.Text.Centered = m.HorizontalImbalance() <= centerSlack && m.VerticalImbalance() <= centerSlack
	}

	switch {
	case a.Expected == "":
	case s.verifier == nil:
		out.OCRError = ocr.ErrUnavailable.Error()
	default:
		v, err := s.verifier.Verify(ctx, data, profile, a.Expected)
		if err != nil {
			out.OCRError = err.Error()
		} else {
			out.OCR = v
		}
	}
	return out, nil
}

func readImageArg(a verifyArgs) ([]byte, error) {
	switch {
	case a.ImageBase64 != "":
		data, err := base64.StdEncoding.DecodeString(a.ImageBase64)
		if err != nil {
			return nil, fmt.Errorf("invalid image_base64: %w", err)
		}
		return data, nil
	case a.Path != "":
		data, err := os.ReadFile(a.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read image: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("either image_base64 or path is required")
	}
}
