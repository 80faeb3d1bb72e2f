package server

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/indic-infographic-mcp/internal/imaging"
	"github.com/ironsheep/indic-infographic-mcp/internal/infographic"
)

func renderPNG(t *testing.T, s *Server, text, lang string) []byte {
	t.Helper()
	var out renderResult
	toolResult(t, callTool(t, s, ToolRender, map[string]interface{}{
		"text":     text,
		"language": lang,
	}), &out)
	data, err := base64.StdEncoding.DecodeString(out.Image.ImageBase64)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestHandleToolsCall_Languages(t *testing.T) {
	s := newTestServer(t, nil, Options{}, "Telugu", "Hindi")

	var out languagesResult
	toolResult(t, callTool(t, s, ToolLanguages, map[string]interface{}{}), &out)

	if len(out.Languages) != 6 {
		t.Fatalf("expected 6 languages, got %d", len(out.Languages))
	}
	available := map[string]bool{}
	for _, l := range out.Languages {
		available[l.Name] = l.FontAvailable
		if !l.FontAvailable && l.FontError == "" {
			t.Errorf("%s: missing font should carry an error", l.Name)
		}
	}
	if !available["Telugu"] || !available["Hindi"] {
		t.Error("Telugu and Hindi fonts should be available")
	}
	if available["Tamil"] {
		t.Error("Tamil font should be missing")
	}
	if out.FontDir == "" {
		t.Error("FontDir should be reported")
	}
}

func TestHandleToolsCall_Translate(t *testing.T) {
	tr := &stubTranslator{answer: "Neeru"}
	s := newTestServer(t, tr, Options{})

	var out translateResult
	toolResult(t, callTool(t, s, ToolTranslate, map[string]interface{}{
		"text":     " water ",
		"language": "telugu",
	}), &out)

	if out.Language != "Telugu" || out.Code != "te" {
		t.Errorf("language: got %s/%s", out.Language, out.Code)
	}
	if out.Source != "water" || out.Translated != "Neeru" {
		t.Errorf("got source %q translated %q", out.Source, out.Translated)
	}
}

func TestHandleToolsCall_Render(t *testing.T) {
	tr := &stubTranslator{}
	s := newTestServer(t, tr, Options{}, "Kannada")

	var out renderResult
	content := toolResult(t, callTool(t, s, ToolRender, map[string]interface{}{
		"text":     "Save water",
		"language": "Kannada",
		"width":    640,
		"height":   360,
	}), &out)

	if tr.calls != 0 {
		t.Errorf("render should not translate, got %d calls", tr.calls)
	}
	if out.Filename != "Kannada_infographic.png" {
		t.Errorf("Filename: got %s", out.Filename)
	}
	if out.Image == nil || out.Image.Width != 640 || out.Image.Height != 360 {
		t.Fatalf("image: got %+v", out.Image)
	}
	if out.Layout.FontSize != 32 {
		t.Errorf("font size: got %d", out.Layout.FontSize)
	}

	if len(content) != 2 || content[1]["type"] != "image" || content[1]["mimeType"] != "image/png" {
		t.Fatalf("expected an image content item, got %v", content)
	}
	data, err := base64.StdEncoding.DecodeString(content[1]["data"].(string))
	if err != nil {
		t.Fatal(err)
	}
	img, err := imaging.DecodePNG(data)
	if err != nil {
		t.Fatalf("image content should decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 360 {
		t.Errorf("decoded size: got %v", b)
	}
}

func TestHandleToolsCall_RenderDeterministic(t *testing.T) {
	s := newTestServer(t, nil, Options{}, "Telugu")
	a := renderPNG(t, s, "Save water", "Telugu")
	b := renderPNG(t, s, "Save water", "Telugu")
	if !bytes.Equal(a, b) {
		t.Error("identical render calls should return identical PNG bytes")
	}
}

func TestHandleToolsCall_RenderPreview(t *testing.T) {
	s := newTestServer(t, nil, Options{}, "Tamil")

	var out renderResult
	toolResult(t, callTool(t, s, ToolRender, map[string]interface{}{
		"text":          "Save water",
		"language":      "Tamil",
		"preview_scale": 0.5,
	}), &out)

	if !out.IsPreview || out.Image.Width != 400 || out.Image.Height != 225 {
		t.Errorf("preview: got %+v", out.Image)
	}
}

func TestHandleToolsCall_RenderSave(t *testing.T) {
	dir := t.TempDir()
	s := newTestServer(t, nil, Options{OutputDir: dir}, "Bengali")

	var out renderResult
	toolResult(t, callTool(t, s, ToolRender, map[string]interface{}{
		"text":     "Save water",
		"language": "bn",
		"save":     true,
	}), &out)

	want := filepath.Join(dir, "Bengali_infographic.png")
	if out.SavedPath != want {
		t.Errorf("SavedPath: got %s, want %s", out.SavedPath, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("saved file missing: %v", err)
	}
}

func TestHandleToolsCall_RenderSaveDisabled(t *testing.T) {
	s := newTestServer(t, nil, Options{}, "Bengali")
	resp := callTool(t, s, ToolRender, map[string]interface{}{
		"text":     "Save water",
		"language": "Bengali",
		"save":     true,
	})
	if resp.Error == nil {
		t.Error("save without an output directory should fail")
	}
}

func TestHandleToolsCall_Generate(t *testing.T) {
	tr := &stubTranslator{answer: "Paani bachao"}
	s := newTestServer(t, tr, Options{}, "Hindi")

	var out renderResult
	toolResult(t, callTool(t, s, ToolGenerate, map[string]interface{}{
		"text":     "Save water",
		"language": "Hindi",
	}), &out)

	if tr.calls != 1 {
		t.Errorf("translator calls: got %d, want 1", tr.calls)
	}
	if out.Source != "Save water" || out.Text != "Paani bachao" {
		t.Errorf("got source %q text %q", out.Source, out.Text)
	}
	if out.Image.Width != 800 || out.Image.Height != 450 {
		t.Errorf("default canvas: got %dx%d", out.Image.Width, out.Image.Height)
	}
}

func TestHandleToolsCall_GenerateErrors(t *testing.T) {
	tests := []struct {
		name     string
		language string
		wantData string
	}{
		{"unsupported language", "French", "unsupported language"},
		{"missing font", "Malayalam", "Please ensure the required Noto Sans font file NotoSansMalayalam-Regular.ttf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &stubTranslator{}
			s := newTestServer(t, tr, Options{}, "Telugu")

			resp := callTool(t, s, ToolGenerate, map[string]interface{}{
				"text":     "Save water",
				"language": tt.language,
			})
			if resp.Error == nil {
				t.Fatal("expected a tool error")
			}
			if resp.Error.Code != -32000 {
				t.Errorf("code: got %d, want -32000", resp.Error.Code)
			}
			if data, _ := resp.Error.Data.(string); !strings.Contains(data, tt.wantData) {
				t.Errorf("data %q should contain %q", data, tt.wantData)
			}
			if tr.calls != 0 {
				t.Errorf("translator should not be called, got %d calls", tr.calls)
			}
		})
	}
}

func TestHandleToolsCall_Verify(t *testing.T) {
	s := newTestServer(t, nil, Options{OCR: stubEngine{text: "Save water"}}, "Telugu")
	data := renderPNG(t, s, "Save water", "Telugu")

	var out verifyResult
	toolResult(t, callTool(t, s, ToolVerify, map[string]interface{}{
		"image_base64": base64.StdEncoding.EncodeToString(data),
		"language":     "Telugu",
		"expected":     "Save water",
	}), &out)

	if out.Width != 800 || out.Height != 450 {
		t.Errorf("size: got %dx%d", out.Width, out.Height)
	}
	if out.Background == nil || out.Background.Hex != "#F0F8FF" {
		t.Errorf("background: got %+v", out.Background)
	}
	if !out.Border.Found {
		t.Errorf("border should be found at %v", out.Border.Expected)
	}
	if !out.Text.InkFound || !out.Text.Centered {
		t.Errorf("text should be centered, margins %+v", out.Text.Margins)
	}
	if out.OCR == nil || !out.OCR.Passed {
		t.Errorf("OCR should pass, got %+v (error %q)", out.OCR, out.OCRError)
	}
}

func TestHandleToolsCall_VerifyFromPathWithoutOCR(t *testing.T) {
	s := newTestServer(t, nil, Options{}, "Hindi")
	path := filepath.Join(t.TempDir(), "in.png")
	if err := os.WriteFile(path, renderPNG(t, s, "Save water", "Hindi"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out verifyResult
	toolResult(t, callTool(t, s, ToolVerify, map[string]interface{}{
		"path":     path,
		"language": "Hindi",
		"expected": "Save water",
	}), &out)

	if out.OCR != nil {
		t.Error("no OCR result expected without an engine")
	}
	if out.OCRError == "" {
		t.Error("OCRError should explain why OCR was skipped")
	}
	if !out.Border.Found {
		t.Error("border should be found")
	}
}

func TestHandleToolsCall_VerifyBlankImage(t *testing.T) {
	s := newTestServer(t, nil, Options{}, "Hindi")
	theme := infographic.DefaultTheme()
	data, err := imaging.EncodePNG(imaging.NewCanvas(300, 200, theme.Background))
	if err != nil {
		t.Fatal(err)
	}

	var out verifyResult
	toolResult(t, callTool(t, s, ToolVerify, map[string]interface{}{
		"image_base64": base64.StdEncoding.EncodeToString(data),
		"language":     "hi",
	}), &out)

	if out.Border.Found || out.Text.InkFound {
		t.Errorf("blank image should have no border or text: %+v", out)
	}
}

func TestHandleToolsCall_VerifyBadInput(t *testing.T) {
	s := newTestServer(t, nil, Options{}, "Hindi")

	cases := []map[string]interface{}{
		{"language": "Hindi"},
		{"language": "Hindi", "image_base64": "%%%"},
		{"language": "Hindi", "image_base64": base64.StdEncoding.EncodeToString([]byte("nope"))},
		{"language": "Hindi", "path": "/nonexistent/image.png"},
		{"language": "Klingon", "path": "/nonexistent/image.png"},
	}
	for i, args := range cases {
		if resp := callTool(t, s, ToolVerify, args); resp.Error == nil {
			t.Errorf("case %d: expected an error", i)
		}
	}
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	s := newTestServer(t, nil, Options{})
	resp := callTool(t, s, "image_crop", map[string]interface{}{})
	if resp.Error == nil || !strings.Contains(resp.Error.Data.(string), "unknown tool") {
		t.Errorf("expected unknown tool error, got %+v", resp.Error)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := newTestServer(t, nil, Options{})
	resp := s.handleToolsCall(t.Context(), &MCPRequest{JSONRPC: "2.0", ID: 1, Params: []byte(`{invalid`)})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("expected -32602, got %+v", resp.Error)
	}
}

func TestHandleToolsCall_WrongArgumentTypes(t *testing.T) {
	s := newTestServer(t, nil, Options{}, "Telugu")
	resp := callTool(t, s, ToolRender, map[string]interface{}{
		"text":     "Save water",
		"language": "Telugu",
		"width":    "wide",
	})
	if resp.Error == nil {
		t.Error("a string width should be rejected")
	}
}

func TestHandleToolsCall_MissingArguments(t *testing.T) {
	s := newTestServer(t, nil, Options{}, "Telugu")
	resp := callTool(t, s, ToolRender, nil)
	if resp.Error == nil {
		t.Error("render without text should fail")
	}
}
